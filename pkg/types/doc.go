// SPDX-License-Identifier: MPL-2.0

// Package types holds small validated value types shared by the urlnorm
// command layer and its configuration.
package types

// SPDX-License-Identifier: MPL-2.0

// Package batch reads URL lists and runs each entry through urlnorm.
//
// Text lists hold one URL per line; blank lines and lines starting with
// '#' are skipped. Files ending in ".cue" are validated against the
// #Batch manifest schema.
package batch

// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown help
// pages for the failures urlnorm users run into.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions; the catalog entries are rendered with glamour by
// `urlnorm explain` and by the command layer when an error names an issue.
package issue

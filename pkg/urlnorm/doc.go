// SPDX-License-Identifier: MPL-2.0

// Package urlnorm decomposes possibly malformed URL strings into the eight
// generic-syntax components, normalizes each of them and serializes the
// result back into a canonical string.
//
// Parse runs the normalization pipeline: the input is sanitized, cut by a
// lenient splitter (retried once with a synthetic "http:" scheme when the
// splitter chokes on a scheme-relative authority), repaired when the splitter
// mistook an authority for a scheme or a path, and finally validated component
// by component.
//
//	u, err := urlnorm.Parse("//example.com:8042/over/there?name=ferret#nose")
//	u.Host().Get()  // "example.com"
//	u.String()      // "//example.com:8042/over/there?name=ferret#nose"
//
// A URL is an immutable value: the With* and Edit* methods return a modified
// copy and leave the receiver untouched.
package urlnorm

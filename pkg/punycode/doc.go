// SPDX-License-Identifier: MPL-2.0

// Package punycode implements the Bootstring encoding of RFC 3492 with the
// parameters used for internationalized domain name labels.
//
// Encode and Decode operate on a single label. ToASCII and ToUnicode apply them
// to every dot-separated label of a domain. All functions are stateless and
// safe for concurrent use; they work on Unicode code points, never on bytes.
//
//	ace, _ := punycode.ToASCII("президент.рф") // "xn--d1abbgf6aiiy.xn--p1ai"
//	dom, _ := punycode.ToUnicode(ace)           // "президент.рф"
package punycode

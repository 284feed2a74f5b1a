// SPDX-License-Identifier: MPL-2.0

// Package escape holds the percent-encoding rules of RFC 3986 used when URL
// components are serialized.
package escape

import (
	"net/url"
	"strings"
)

const upperHex = "0123456789ABCDEF"

// Raw percent-encodes every byte except the RFC 3986 unreserved characters
// (ALPHA, DIGIT, "-", ".", "_", "~").
func Raw(s string) string {
	return encode(s, isUnreserved, false)
}

// PathSegment percent-encodes s for use as a single path segment. Characters
// allowed in a pchar are kept, "/" is always encoded, and existing valid
// percent-encoded triplets are preserved with their hex digits uppercased.
func PathSegment(s string) string {
	return encode(s, isPathChar, true)
}

// QueryComponent form-encodes s and then renders spaces as "%20" and the
// "%E7" triplet as a literal tilde.
func QueryComponent(s string) string {
	return strings.NewReplacer("%E7", "~", "+", "%20").Replace(url.QueryEscape(s))
}

// Unescape decodes percent-encoded triplets. "+" is left untouched.
// Malformed escapes are kept verbatim.
func Unescape(s string) string {
	return unescape(s, false)
}

// UnescapeQuery decodes a form-encoded key or value ("+" becomes a space).
// Malformed escapes are kept verbatim.
func UnescapeQuery(s string) string {
	return unescape(s, true)
}

// unescape decodes every valid "%XX" triplet on its own, so one malformed
// escape does not keep its valid neighbours encoded.
func unescape(s string, plusSpace bool) string {
	if !strings.ContainsRune(s, '%') && (!plusSpace || !strings.ContainsRune(s, '+')) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		case c == '+' && plusSpace:
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func encode(s string, keep func(byte) bool, keepTriplets bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case keep(c):
			b.WriteByte(c)
		case c == '%' && keepTriplets && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte('%')
			b.WriteByte(upper(s[i+1]))
			b.WriteByte(upper(s[i+2]))
			i += 2
		default:
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0x0F])
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return c == '-' || c == '.' || c == '_' || c == '~'
}

func isPathChar(c byte) bool {
	if isUnreserved(c) {
		return true
	}
	switch c {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=', ':', '@':
		return true
	}
	return false
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	}
	return c - 'A' + 10
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'f' {
		return c - ('a' - 'A')
	}
	return c
}

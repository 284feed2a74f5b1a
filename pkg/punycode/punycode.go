// SPDX-License-Identifier: MPL-2.0

package punycode

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"
)

// Bootstring parameters for Punycode (RFC 3492, section 5).
const (
	base        = 36
	tMin        = 1
	tMax        = 26
	skew        = 38
	damp        = 700
	initialBias = 72
	initialN    = 128
	delimiter   = '-'
	maxInt      = math.MaxInt32

	// Prefix marks an ASCII-compatible encoded (ACE) label.
	Prefix = "xn--"
)

var (
	// ErrInvalidInput is returned when an ACE label contains characters that
	// are not Punycode digits or ends in the middle of a variable-length integer.
	ErrInvalidInput = errors.New("invalid punycode input")
	// ErrOverflow is returned when a delta does not fit the 32-bit arithmetic
	// mandated by RFC 3492.
	ErrOverflow = errors.New("punycode overflow")
)

// LabelError reports the label that could not be transcoded.
// It wraps ErrInvalidInput or ErrOverflow for errors.Is() compatibility.
type LabelError struct {
	Label  string
	Reason string
	Err    error
}

// Error implements the error interface for LabelError.
func (e *LabelError) Error() string {
	return fmt.Sprintf("punycode label %q: %s", e.Label, e.Reason)
}

// Unwrap returns the sentinel describing the failure class.
func (e *LabelError) Unwrap() error { return e.Err }

// Encode transcodes a Unicode label to its ACE form. Labels made only of
// ASCII code points are returned unchanged and without the "xn--" prefix.
func Encode(label string) (string, error) {
	if isASCII(label) {
		return label, nil
	}

	points := []rune(label)
	var out strings.Builder
	for _, r := range points {
		if r < initialN {
			out.WriteRune(r)
		}
	}

	b := out.Len()
	h := b
	if b > 0 {
		out.WriteByte(delimiter)
	}

	n, delta, bias := initialN, 0, initialBias
	for h < len(points) {
		// m is the smallest code point not yet handled.
		m := maxInt
		for _, r := range points {
			if c := int(r); c >= n && c < m {
				m = c
			}
		}
		if m-n > (maxInt-delta)/(h+1) {
			return "", &LabelError{Label: label, Reason: "delta exceeds 32 bits", Err: ErrOverflow}
		}
		delta += (m - n) * (h + 1)
		n = m

		for _, r := range points {
			c := int(r)
			if c < n {
				delta++
				if delta > maxInt {
					return "", &LabelError{Label: label, Reason: "delta exceeds 32 bits", Err: ErrOverflow}
				}
			}
			if c != n {
				continue
			}
			q := delta
			for k := base; ; k += base {
				t := threshold(k, bias)
				if q < t {
					break
				}
				out.WriteByte(encodeDigit(t + (q-t)%(base-t)))
				q = (q - t) / (base - t)
			}
			out.WriteByte(encodeDigit(q))
			bias = adapt(delta, h+1, h == b)
			delta = 0
			h++
		}
		delta++
		n++
	}

	return Prefix + out.String(), nil
}

// Decode transcodes an ACE label back to Unicode. Labels that do not start
// with the "xn--" prefix are returned unchanged.
func Decode(label string) (string, error) {
	if len(label) < len(Prefix) || !strings.EqualFold(label[:len(Prefix)], Prefix) {
		return label, nil
	}
	encoded := label[len(Prefix):]

	var output []rune
	pos := 0
	if last := strings.LastIndexByte(encoded, delimiter); last >= 0 {
		for j := range last {
			if encoded[j] >= utf8.RuneSelf {
				return "", &LabelError{Label: label, Reason: "non-ASCII basic code point", Err: ErrInvalidInput}
			}
			output = append(output, rune(encoded[j]))
		}
		pos = last + 1
	}

	n, i, bias := initialN, 0, initialBias
	for pos < len(encoded) {
		oldi, w := i, 1
		for k := base; ; k += base {
			if pos >= len(encoded) {
				return "", &LabelError{Label: label, Reason: "truncated variable-length integer", Err: ErrInvalidInput}
			}
			digit, ok := decodeDigit(encoded[pos])
			pos++
			if !ok {
				return "", &LabelError{Label: label, Reason: fmt.Sprintf("invalid digit %q", encoded[pos-1]), Err: ErrInvalidInput}
			}
			if digit > (maxInt-i)/w {
				return "", &LabelError{Label: label, Reason: "index exceeds 32 bits", Err: ErrOverflow}
			}
			i += digit * w
			t := threshold(k, bias)
			if digit < t {
				break
			}
			if w > maxInt/(base-t) {
				return "", &LabelError{Label: label, Reason: "weight exceeds 32 bits", Err: ErrOverflow}
			}
			w *= base - t
		}

		length := len(output) + 1
		bias = adapt(i-oldi, length, oldi == 0)
		if i/length > maxInt-n {
			return "", &LabelError{Label: label, Reason: "code point exceeds 32 bits", Err: ErrOverflow}
		}
		n += i / length
		i %= length
		if n > utf8.MaxRune || (n >= 0xD800 && n <= 0xDFFF) {
			return "", &LabelError{Label: label, Reason: fmt.Sprintf("invalid code point U+%04X", n), Err: ErrInvalidInput}
		}
		output = slices.Insert(output, i, rune(n))
		i++
	}

	return string(output), nil
}

// ToASCII encodes every dot-separated label of domain.
func ToASCII(domain string) (string, error) {
	return mapLabels(domain, Encode)
}

// ToUnicode decodes every dot-separated label of domain.
func ToUnicode(domain string) (string, error) {
	return mapLabels(domain, Decode)
}

func mapLabels(domain string, fn func(string) (string, error)) (string, error) {
	labels := strings.Split(domain, ".")
	for idx, label := range labels {
		converted, err := fn(label)
		if err != nil {
			return "", err
		}
		labels[idx] = converted
	}
	return strings.Join(labels, "."), nil
}

// adapt is the bias adaptation function of RFC 3492, section 6.1.
func adapt(delta, numPoints int, firstTime bool) int {
	if firstTime {
		delta /= damp
	} else {
		delta /= 2
	}
	delta += delta / numPoints

	k := 0
	for delta > ((base-tMin)*tMax)/2 {
		delta /= base - tMin
		k += base
	}
	return k + (base-tMin+1)*delta/(delta+skew)
}

func threshold(k, bias int) int {
	switch {
	case k <= bias+tMin:
		return tMin
	case k >= bias+tMax:
		return tMax
	default:
		return k - bias
	}
}

func encodeDigit(d int) byte {
	if d < 26 {
		return byte('a' + d)
	}
	return byte('0' + d - 26)
}

func decodeDigit(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c - 'A'), true
	case c >= '0' && c <= '9':
		return int(c-'0') + 26, true
	default:
		return 0, false
	}
}

func isASCII(s string) bool {
	for i := range len(s) {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

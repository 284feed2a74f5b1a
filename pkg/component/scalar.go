// SPDX-License-Identifier: MPL-2.0

package component

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/urlnorm/urlnorm/internal/escape"
)

// MaxPort is the largest port number a Port accepts.
const MaxPort = 65535

var schemePattern = regexp.MustCompile(`^[a-z][a-z0-9+.-]+$`)

type (
	// Scheme is the lowercased URL scheme. The zero value is an unset scheme.
	Scheme struct{ value string }

	// User is the user name of the authority. The zero value is unset.
	User struct{ value string }

	// Pass is the password of the authority. The zero value is unset.
	Pass struct{ value string }

	// Port is the numeric port of the authority. The zero value is unset.
	Port struct{ value int }

	// Fragment is the fragment identifier, stored decoded and serialized
	// percent-encoded. The zero value is unset.
	Fragment struct{ value string }
)

// NewScheme returns a Scheme set to value.
func NewScheme(value string) (Scheme, error) {
	var s Scheme
	err := s.Set(value)
	return s, err
}

// Set validates and stores value. Control characters and surrounding
// whitespace are stripped and the result is lowercased; "" unsets the scheme.
func (s *Scheme) Set(value string) error {
	v := strings.ToLower(strings.TrimSpace(stripLow(value)))
	if v != "" && !schemePattern.MatchString(v) {
		return &ValidationError{Component: "scheme", Value: value, Reason: "must match ^[a-z][a-z0-9+.-]+$", Err: ErrInvalidScheme}
	}
	s.value = v
	return nil
}

// Get returns the scheme, or "" when unset.
func (s Scheme) Get() string { return s.value }

// String returns the scheme.
func (s Scheme) String() string { return s.value }

// URIComponent returns "scheme://", or "" when unset.
func (s Scheme) URIComponent() string {
	if s.value == "" {
		return ""
	}
	return s.value + "://"
}

// IsEmpty reports whether the scheme is unset.
func (s Scheme) IsEmpty() bool { return s.value == "" }

// SameValueAs reports whether both schemes serialize identically.
func (s Scheme) SameValueAs(other Scheme) bool { return s.String() == other.String() }

// NewUser returns a User set to value.
func NewUser(value string) User {
	var u User
	_ = u.Set(value)
	return u
}

// Set stores value without control characters and surrounding whitespace.
// It never fails.
func (u *User) Set(value string) error {
	u.value = strings.TrimSpace(stripLow(value))
	return nil
}

// Get returns the user name.
func (u User) Get() string { return u.value }

// String returns the user name.
func (u User) String() string { return u.value }

// URIComponent returns the user name; the "@" separator belongs to the URL.
func (u User) URIComponent() string { return u.value }

// IsEmpty reports whether the user name is unset.
func (u User) IsEmpty() bool { return u.value == "" }

// SameValueAs reports whether both user names serialize identically.
func (u User) SameValueAs(other User) bool { return u.String() == other.String() }

// NewPass returns a Pass set to value.
func NewPass(value string) Pass {
	var p Pass
	_ = p.Set(value)
	return p
}

// Set stores value without control characters, a single leading ":" and
// surrounding whitespace. It never fails.
func (p *Pass) Set(value string) error {
	v := stripLow(value)
	v = strings.TrimPrefix(v, ":")
	p.value = strings.TrimSpace(v)
	return nil
}

// Get returns the password.
func (p Pass) Get() string { return p.value }

// String returns the password.
func (p Pass) String() string { return p.value }

// URIComponent returns ":password", or "" when unset.
func (p Pass) URIComponent() string {
	if p.value == "" {
		return ""
	}
	return ":" + p.value
}

// IsEmpty reports whether the password is unset.
func (p Pass) IsEmpty() bool { return p.value == "" }

// SameValueAs reports whether both passwords serialize identically.
func (p Pass) SameValueAs(other Pass) bool { return p.String() == other.String() }

// NewPort returns a Port parsed from value.
func NewPort(value string) (Port, error) {
	var p Port
	err := p.Set(value)
	return p, err
}

// Set parses a decimal port. Surrounding whitespace is ignored and ""
// unsets the port.
func (p *Port) Set(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		p.value = 0
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return &ValidationError{Component: "port", Value: value, Reason: "must be a positive integer", Err: ErrInvalidPort}
	}
	return p.SetInt(n)
}

// SetInt stores n, which must be in the range 1-65535.
func (p *Port) SetInt(n int) error {
	if n < 1 || n > MaxPort {
		return &ValidationError{Component: "port", Value: strconv.Itoa(n), Reason: "must be in range 1-65535", Err: ErrInvalidPort}
	}
	p.value = n
	return nil
}

// Get returns the port number, or 0 when unset.
func (p Port) Get() int { return p.value }

// String returns the decimal port, or "" when unset.
func (p Port) String() string {
	if p.value == 0 {
		return ""
	}
	return strconv.Itoa(p.value)
}

// URIComponent returns ":port", or "" when unset.
func (p Port) URIComponent() string {
	if p.value == 0 {
		return ""
	}
	return ":" + strconv.Itoa(p.value)
}

// IsEmpty reports whether the port is unset.
func (p Port) IsEmpty() bool { return p.value == 0 }

// SameValueAs reports whether both ports serialize identically.
func (p Port) SameValueAs(other Port) bool { return p.String() == other.String() }

// NewFragment returns a Fragment holding the decoded value.
func NewFragment(value string) Fragment {
	return Fragment{value: value}
}

// Set stores the decoded fragment. It never fails.
func (f *Fragment) Set(value string) error {
	f.value = value
	return nil
}

// Get returns the decoded fragment.
func (f Fragment) Get() string { return f.value }

// String returns the fragment percent-encoded per RFC 3986.
func (f Fragment) String() string { return escape.Raw(f.value) }

// URIComponent returns "#fragment", or "" when unset.
func (f Fragment) URIComponent() string {
	if f.value == "" {
		return ""
	}
	return "#" + f.String()
}

// IsEmpty reports whether the fragment is unset.
func (f Fragment) IsEmpty() bool { return f.value == "" }

// SameValueAs reports whether both fragments serialize identically.
func (f Fragment) SameValueAs(other Fragment) bool { return f.String() == other.String() }

// SPDX-License-Identifier: MPL-2.0

package component

import (
	"fmt"
	"iter"
)

type (
	// Component is the contract shared by all URL components.
	Component interface {
		fmt.Stringer
		// URIComponent returns the value with its syntactic decoration
		// ("scheme://", ":8080", "?query", "#fragment"), or "" when empty.
		URIComponent() string
		IsEmpty() bool
	}

	// Scalar is a component holding a single optional value.
	Scalar interface {
		Component
		Set(value string) error
	}

	// Sequence is a component made of ordered labels.
	Sequence interface {
		Component
		Len() int
		Labels() []string
		Label(i int) (string, bool)
		All() iter.Seq2[int, string]
		SetLabel(i int, label string) error
		UnsetLabel(i int) error
		InsertAfter(labels []string, anchor *Anchor) error
		InsertBefore(labels []string, anchor *Anchor) error
		Remove(label string) error
	}
)

var (
	_ Scalar    = (*Scheme)(nil)
	_ Scalar    = (*User)(nil)
	_ Scalar    = (*Pass)(nil)
	_ Scalar    = (*Port)(nil)
	_ Scalar    = (*Fragment)(nil)
	_ Sequence  = (*Host)(nil)
	_ Sequence  = (*Path)(nil)
	_ Sequence  = (*LabelSequence)(nil)
	_ Component = (*Query)(nil)
)

// SameValue reports whether two components serialize identically.
func SameValue(a, b Component) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

// stripLow removes ASCII control characters below 0x20.
func stripLow(s string) string {
	for i := range len(s) {
		if s[i] < 0x20 {
			b := make([]byte, 0, len(s))
			for j := range len(s) {
				if s[j] >= 0x20 {
					b = append(b, s[j])
				}
			}
			return string(b)
		}
	}
	return s
}

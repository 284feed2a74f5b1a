// SPDX-License-Identifier: MPL-2.0

package component

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

type (
	// Anchor designates an existing label by value. Occurrence selects which
	// match to use when the label appears more than once (0-based).
	Anchor struct {
		Label      string
		Occurrence int
	}

	// LabelSequence is an ordered list of labels joined by a fixed delimiter.
	// Labels never contain the delimiter: inserted strings are split on it.
	// The zero value has no delimiter and stores inserted strings whole.
	//
	// Mutations always build a new backing slice, so copying a LabelSequence
	// by value yields an independent sequence.
	LabelSequence struct {
		delim  string
		labels []string
	}
)

// At returns an anchor on the given occurrence of label.
func At(label string, occurrence int) *Anchor {
	return &Anchor{Label: label, Occurrence: occurrence}
}

// NewLabelSequence returns a sequence over labels, each split on delim.
func NewLabelSequence(delim string, labels ...string) LabelSequence {
	s := LabelSequence{delim: delim}
	s.labels = s.split(labels)
	return s
}

// Delimiter returns the separator placed between labels.
func (s LabelSequence) Delimiter() string { return s.delim }

// Len returns the number of labels.
func (s LabelSequence) Len() int { return len(s.labels) }

// IsEmpty reports whether the sequence holds no label.
func (s LabelSequence) IsEmpty() bool { return len(s.labels) == 0 }

// Labels returns a copy of the labels.
func (s LabelSequence) Labels() []string { return slices.Clone(s.labels) }

// Clone returns a deep copy of the sequence.
func (s LabelSequence) Clone() LabelSequence {
	return LabelSequence{delim: s.delim, labels: slices.Clone(s.labels)}
}

// Label returns the label at position i.
func (s LabelSequence) Label(i int) (string, bool) {
	if i < 0 || i >= len(s.labels) {
		return "", false
	}
	return s.labels[i], true
}

// All iterates over positions and labels in order.
func (s LabelSequence) All() iter.Seq2[int, string] {
	return slices.All(s.labels)
}

// String joins the labels with the delimiter.
func (s LabelSequence) String() string { return strings.Join(s.labels, s.delim) }

// URIComponent returns the joined labels.
func (s LabelSequence) URIComponent() string { return s.String() }

// Index returns the position of the anchor.
func (s LabelSequence) Index(anchor Anchor) (int, error) {
	seen := 0
	for i, label := range s.labels {
		if label != anchor.Label {
			continue
		}
		if seen == anchor.Occurrence {
			return i, nil
		}
		seen++
	}
	return -1, &ValidationError{
		Component: "anchor",
		Value:     anchor.Label,
		Reason:    fmt.Sprintf("occurrence %d not found among %d match(es)", anchor.Occurrence, seen),
		Err:       ErrAnchorNotFound,
	}
}

// SetLabel replaces the label at position i; i == Len() appends.
func (s *LabelSequence) SetLabel(i int, label string) error {
	labels, err := s.replaced(i, s.split([]string{label}))
	if err != nil {
		return err
	}
	s.labels = labels
	return nil
}

// UnsetLabel removes the label at position i. Out of range positions are ignored.
func (s *LabelSequence) UnsetLabel(i int) error {
	s.labels = s.without(i)
	return nil
}

// InsertAfter inserts labels right after the anchor, or at the end when
// anchor is nil.
func (s *LabelSequence) InsertAfter(labels []string, anchor *Anchor) error {
	return s.insert(labels, anchor, true)
}

// InsertBefore inserts labels right before the anchor, or at the start when
// anchor is nil.
func (s *LabelSequence) InsertBefore(labels []string, anchor *Anchor) error {
	return s.insert(labels, anchor, false)
}

func (s *LabelSequence) insert(labels []string, anchor *Anchor, after bool) error {
	merged, err := s.inserted(s.split(labels), anchor, after)
	if err != nil {
		return err
	}
	s.labels = merged
	return nil
}

// Remove drops the first label equal to label. Absent labels are ignored.
func (s *LabelSequence) Remove(label string) error {
	s.labels = s.removed(label)
	return nil
}

func (s LabelSequence) split(labels []string) []string {
	if s.delim == "" {
		return slices.Clone(labels)
	}
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		out = append(out, strings.Split(label, s.delim)...)
	}
	return out
}

// inserted returns the labels that would result from inserting added
// relative to anchor, without modifying s.
func (s LabelSequence) inserted(added []string, anchor *Anchor, after bool) ([]string, error) {
	pos := 0
	if after {
		pos = len(s.labels)
	}
	if anchor != nil {
		idx, err := s.Index(*anchor)
		if err != nil {
			return nil, err
		}
		pos = idx
		if after {
			pos++
		}
	}
	out := make([]string, 0, len(s.labels)+len(added))
	out = append(out, s.labels[:pos]...)
	out = append(out, added...)
	return append(out, s.labels[pos:]...), nil
}

func (s LabelSequence) replaced(i int, labels []string) ([]string, error) {
	if i < 0 || i > len(s.labels) {
		return nil, &ValidationError{
			Component: "label index",
			Value:     fmt.Sprint(i),
			Reason:    fmt.Sprintf("must be in range 0-%d", len(s.labels)),
			Err:       ErrInvalidIndex,
		}
	}
	out := make([]string, 0, len(s.labels)+len(labels))
	out = append(out, s.labels[:i]...)
	out = append(out, labels...)
	if i < len(s.labels) {
		out = append(out, s.labels[i+1:]...)
	}
	return out, nil
}

func (s LabelSequence) without(i int) []string {
	if i < 0 || i >= len(s.labels) {
		return s.labels
	}
	return slices.Concat(s.labels[:i], s.labels[i+1:])
}

func (s LabelSequence) removed(label string) []string {
	idx := slices.Index(s.labels, label)
	if idx < 0 {
		return s.labels
	}
	return s.without(idx)
}

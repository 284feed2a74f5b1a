// SPDX-License-Identifier: MPL-2.0

package component

import (
	"iter"
	"strings"

	"github.com/urlnorm/urlnorm/internal/escape"
)

const pathDelimiter = "/"

// Path is the path component, a sequence of segments joined by "/". Inner
// empty segments and a trailing empty segment (trailing slash) are kept.
// Segments are stored as given and percent-encoded on serialization.
type Path struct {
	seq LabelSequence
}

// NewPath returns a Path parsed from raw.
func NewPath(raw string) Path {
	var p Path
	p.Set(raw)
	return p
}

// Set replaces the path. A single leading "/" is ignored; "" and "/" both
// yield the empty (root) path.
func (p *Path) Set(raw string) {
	raw = strings.TrimPrefix(raw, pathDelimiter)
	if raw == "" {
		p.seq = LabelSequence{delim: pathDelimiter}
		return
	}
	p.seq = NewLabelSequence(pathDelimiter, raw)
}

// SetSegments replaces the path with segments, each split on "/".
func (p *Path) SetSegments(segments ...string) {
	p.seq = NewLabelSequence(pathDelimiter, segments...)
}

// Get returns the raw segments joined by "/", without the leading slash.
func (p Path) Get() string { return p.seq.String() }

// String returns the percent-encoded segments joined by "/", without the
// leading slash.
func (p Path) String() string { return strings.Join(p.encoded(), pathDelimiter) }

// URIComponent returns the path with its leading slash. The empty path
// serializes as "/".
func (p Path) URIComponent() string { return pathDelimiter + p.String() }

// IsEmpty reports whether the path has no segment.
func (p Path) IsEmpty() bool { return p.seq.IsEmpty() }

// Len returns the number of segments.
func (p Path) Len() int { return p.seq.Len() }

// Labels returns a copy of the raw segments.
func (p Path) Labels() []string { return p.seq.Labels() }

// Label returns the raw segment at position i.
func (p Path) Label(i int) (string, bool) { return p.seq.Label(i) }

// All iterates over positions and raw segments in order.
func (p Path) All() iter.Seq2[int, string] { return p.seq.All() }

// HasTrailingSlash reports whether the path ends with "/".
func (p Path) HasTrailingSlash() bool {
	n := p.seq.Len()
	return n > 0 && p.seq.labels[n-1] == ""
}

// SameValueAs reports whether both paths serialize identically.
func (p Path) SameValueAs(other Path) bool { return p.String() == other.String() }

// Clone returns a deep copy of the path.
func (p Path) Clone() Path { return Path{seq: p.seq.Clone()} }

// SetLabel replaces the segment at position i; i == Len() appends.
func (p *Path) SetLabel(i int, segment string) error { return p.sequence().SetLabel(i, segment) }

// UnsetLabel removes the segment at position i. Out of range positions are ignored.
func (p *Path) UnsetLabel(i int) error { return p.sequence().UnsetLabel(i) }

// InsertAfter inserts segments right after the anchor, or at the end when
// anchor is nil.
func (p *Path) InsertAfter(segments []string, anchor *Anchor) error {
	return p.sequence().InsertAfter(segments, anchor)
}

// InsertBefore inserts segments right before the anchor, or at the start
// when anchor is nil.
func (p *Path) InsertBefore(segments []string, anchor *Anchor) error {
	return p.sequence().InsertBefore(segments, anchor)
}

// Remove drops the first segment equal to segment. Absent segments are ignored.
func (p *Path) Remove(segment string) error { return p.sequence().Remove(segment) }

// sequence returns the segment list, giving the zero Path its delimiter.
func (p *Path) sequence() *LabelSequence {
	if p.seq.delim == "" {
		p.seq.delim = pathDelimiter
	}
	return &p.seq
}

// RelativeTo returns the relative reference that resolves to p against the
// reference path ref, eliding the directory segments both share.
func (p Path) RelativeTo(ref Path) string {
	target, base := p.encoded(), ref.encoded()
	targetDir := dir(target)
	baseDir := dir(base)

	common := 0
	for common < len(targetDir) && common < len(baseDir) && targetDir[common] == baseDir[common] {
		common++
	}

	rel := strings.Repeat("../", len(baseDir)-common) + strings.Join(target[common:], pathDelimiter)
	switch {
	case rel == "" && p.String() != ref.String():
		return "./"
	case strings.HasPrefix(rel, "../"):
		return rel
	}
	// A first segment holding ":" would be read as a scheme.
	if first, _, _ := strings.Cut(rel, pathDelimiter); strings.Contains(first, ":") {
		return "./" + rel
	}
	return rel
}

func (p Path) encoded() []string {
	out := make([]string, len(p.seq.labels))
	for i, segment := range p.seq.labels {
		out[i] = escape.PathSegment(segment)
	}
	return out
}

// dir returns the directory part of segments: everything but the last one.
func dir(segments []string) []string {
	if len(segments) == 0 {
		return nil
	}
	return segments[:len(segments)-1]
}

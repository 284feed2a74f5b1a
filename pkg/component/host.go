// SPDX-License-Identifier: MPL-2.0

package component

import (
	"fmt"
	"iter"
	"net/netip"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/urlnorm/urlnorm/pkg/punycode"
)

const (
	// MaxLabelLength is the maximum number of characters in a host label.
	MaxLabelLength = 63
	// MaxLabels is the maximum number of labels in a host.
	MaxLabels = 126
	// MaxHostLength bounds the ASCII serialization of a host (exclusive).
	MaxHostLength = 255

	hostDelimiter = "."
)

var hostLabelPattern = regexp.MustCompile(`(?i)^[0-9a-z]([0-9a-z-]{0,61}[0-9a-z])?$`)

type hostMode uint8

const (
	modeName hostMode = iota
	modeIPv4
	modeIPv6
)

// Host is the host component. It is either a registered name, whose labels
// are stored in Unicode form and validated in their ASCII-compatible form, or
// an IPv4/IPv6 literal. An IP literal host cannot have its labels edited.
type Host struct {
	seq  LabelSequence
	mode hostMode
}

// NewHost returns a Host set to value.
func NewHost(value string) (Host, error) {
	var h Host
	err := h.Set(value)
	return h, err
}

// Set replaces the host. IP literals (IPv6 optionally in brackets) switch the
// host to IP mode; anything else is split on "." and validated as a name of
// 1 to 126 labels. Empty labels are dropped and "" unsets the host.
func (h *Host) Set(value string) error {
	v := strings.TrimSpace(value)
	if addr, ok := parseIP(v); ok {
		mode := modeIPv6
		if addr.Is4() {
			mode = modeIPv4
		}
		*h = Host{seq: NewLabelSequence(hostDelimiter, addr.String()), mode: mode}
		return nil
	}
	return h.SetLabels(strings.Split(v, hostDelimiter)...)
}

// SetLabels replaces the host with a registered name made of labels.
func (h *Host) SetLabels(labels ...string) error {
	seq := LabelSequence{delim: hostDelimiter}
	decoded, err := normalizeLabels(seq.split(labels))
	if err != nil {
		return err
	}
	if len(decoded) > 0 {
		if err := checkHostBounds(strings.Join(labels, hostDelimiter), decoded, 1); err != nil {
			return err
		}
	}
	seq.labels = decoded
	*h = Host{seq: seq}
	return nil
}

// Get returns the host in Unicode form, or the bare IP literal.
func (h Host) Get() string { return h.seq.String() }

// String returns the host in Unicode form, or the bare IP literal.
func (h Host) String() string { return h.seq.String() }

// URIComponent returns the host as it appears in a URL; IPv6 literals are
// enclosed in brackets.
func (h Host) URIComponent() string {
	if h.mode == modeIPv6 {
		return "[" + h.seq.String() + "]"
	}
	return h.seq.String()
}

// ToASCII returns the host with every label in ASCII-compatible form.
func (h Host) ToASCII() string {
	if h.IsIP() {
		return h.seq.String()
	}
	ascii, _ := toASCII(h.seq.labels)
	return strings.Join(ascii, hostDelimiter)
}

// ToUnicode returns the host with every label in Unicode form.
func (h Host) ToUnicode() string { return h.seq.String() }

// IsIP reports whether the host is an IP literal.
func (h Host) IsIP() bool { return h.mode != modeName }

// IsIPv4 reports whether the host is an IPv4 literal.
func (h Host) IsIPv4() bool { return h.mode == modeIPv4 }

// IsIPv6 reports whether the host is an IPv6 literal.
func (h Host) IsIPv6() bool { return h.mode == modeIPv6 }

// IsEmpty reports whether the host is unset.
func (h Host) IsEmpty() bool { return h.seq.IsEmpty() }

// Len returns the number of labels.
func (h Host) Len() int { return h.seq.Len() }

// Labels returns a copy of the labels in Unicode form.
func (h Host) Labels() []string { return h.seq.Labels() }

// Label returns the label at position i.
func (h Host) Label(i int) (string, bool) { return h.seq.Label(i) }

// All iterates over positions and labels in order.
func (h Host) All() iter.Seq2[int, string] { return h.seq.All() }

// SameValueAs reports whether both hosts serialize identically.
func (h Host) SameValueAs(other Host) bool { return h.String() == other.String() }

// Clone returns a deep copy of the host.
func (h Host) Clone() Host { return Host{seq: h.seq.Clone(), mode: h.mode} }

// SetLabel replaces the label at position i; i == Len() appends.
func (h *Host) SetLabel(i int, label string) error {
	if err := h.assertName("set label"); err != nil {
		return err
	}
	added, err := normalizeLabels(h.sequence().split([]string{label}))
	if err != nil {
		return err
	}
	labels, err := h.seq.replaced(i, added)
	if err != nil {
		return err
	}
	return h.commit(labels, label)
}

// UnsetLabel removes the label at position i. Out of range positions are
// ignored. The label count is not checked.
func (h *Host) UnsetLabel(i int) error {
	if err := h.assertName("unset label"); err != nil {
		return err
	}
	h.sequence().labels = h.seq.without(i)
	return nil
}

// InsertAfter inserts labels right after the anchor, or at the end when
// anchor is nil. The resulting host must hold 2 to 126 labels.
func (h *Host) InsertAfter(labels []string, anchor *Anchor) error {
	return h.insert("insert after", labels, anchor, true)
}

// InsertBefore inserts labels right before the anchor, or at the start when
// anchor is nil. The resulting host must hold 2 to 126 labels.
func (h *Host) InsertBefore(labels []string, anchor *Anchor) error {
	return h.insert("insert before", labels, anchor, false)
}

// Remove drops the first label equal to label once normalized. Absent labels
// are ignored. The label count is not checked.
func (h *Host) Remove(label string) error {
	if err := h.assertName("remove label"); err != nil {
		return err
	}
	if key, ok := normalizeLabel(label); ok {
		h.sequence().labels = h.seq.removed(key)
	}
	return nil
}

func (h *Host) insert(op string, labels []string, anchor *Anchor, after bool) error {
	if err := h.assertName(op); err != nil {
		return err
	}
	added, err := normalizeLabels(h.sequence().split(labels))
	if err != nil {
		return err
	}
	if anchor != nil {
		if key, ok := normalizeLabel(anchor.Label); ok {
			anchor = At(key, anchor.Occurrence)
		}
	}
	merged, err := h.seq.inserted(added, anchor, after)
	if err != nil {
		return err
	}
	return h.commit(merged, strings.Join(labels, hostDelimiter))
}

// commit checks the bounds of a host edited in place and stores labels.
func (h *Host) commit(labels []string, input string) error {
	if err := checkHostBounds(input, labels, 2); err != nil {
		return err
	}
	h.seq.labels = labels
	return nil
}

// sequence returns the label list, giving the zero Host its delimiter.
func (h *Host) sequence() *LabelSequence {
	if h.seq.delim == "" {
		h.seq.delim = hostDelimiter
	}
	return &h.seq
}

func (h Host) assertName(op string) error {
	if h.IsIP() {
		return &InvariantViolationError{Op: op, Reason: fmt.Sprintf("host %q is an IP literal and cannot be modified", h.seq.String())}
	}
	return nil
}

func parseIP(v string) (netip.Addr, bool) {
	if len(v) >= 2 && v[0] == '[' && v[len(v)-1] == ']' {
		v = v[1 : len(v)-1]
	}
	addr, err := netip.ParseAddr(v)
	if err != nil || addr.Zone() != "" {
		return netip.Addr{}, false
	}
	return addr, true
}

// normalizeLabels validates raw labels and returns them in Unicode form.
// Empty labels are dropped.
func normalizeLabels(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, label := range raw {
		if label == "" {
			continue
		}
		decoded, err := validateLabel(label)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

// normalizeLabel returns the stored form of label, used to match anchors.
func normalizeLabel(label string) (string, bool) {
	decoded, err := validateLabel(label)
	return decoded, err == nil
}

func validateLabel(label string) (string, error) {
	v := norm.NFC.String(strings.ToLower(label))
	// The length rule applies before the label is transcoded.
	if utf8.RuneCountInString(v) > MaxLabelLength {
		return "", &ValidationError{
			Component: "host label",
			Value:     label,
			Reason:    fmt.Sprintf("must not exceed %d characters", MaxLabelLength),
			Err:       ErrInvalidLabelLength,
		}
	}
	ace, err := punycode.Encode(v)
	if err != nil {
		return "", &ValidationError{Component: "host label", Value: label, Err: ErrInvalidHostLabel, Cause: err}
	}
	if !hostLabelPattern.MatchString(ace) {
		return "", &ValidationError{
			Component: "host label",
			Value:     label,
			Reason:    "must contain only letters, digits and inner hyphens",
			Err:       ErrInvalidHostLabel,
		}
	}
	decoded, err := punycode.Decode(ace)
	if err != nil {
		return "", &ValidationError{Component: "host label", Value: label, Err: ErrInvalidHostLabel, Cause: err}
	}
	return decoded, nil
}

func checkHostBounds(input string, labels []string, minLabels int) error {
	if n := len(labels); n < minLabels || n > MaxLabels {
		return &ValidationError{
			Component: "host",
			Value:     input,
			Reason:    fmt.Sprintf("would hold %d labels, must hold %d to %d", n, minLabels, MaxLabels),
			Err:       ErrInvalidLabelCount,
		}
	}
	ascii, err := toASCII(labels)
	if err != nil {
		return &ValidationError{Component: "host", Value: input, Err: ErrInvalidHostLabel, Cause: err}
	}
	if n := len(strings.Join(ascii, hostDelimiter)); n >= MaxHostLength {
		return &ValidationError{
			Component: "host",
			Value:     input,
			Reason:    fmt.Sprintf("ASCII form is %d characters, must be under %d", n, MaxHostLength),
			Err:       ErrInvalidHostLength,
		}
	}
	return nil
}

func toASCII(labels []string) ([]string, error) {
	out := make([]string, len(labels))
	for i, label := range labels {
		ace, err := punycode.Encode(label)
		if err != nil {
			return nil, err
		}
		out[i] = ace
	}
	return out, nil
}

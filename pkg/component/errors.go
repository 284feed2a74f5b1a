// SPDX-License-Identifier: MPL-2.0

package component

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("invalid component value")
	// ErrInvariantViolation is wrapped by every *InvariantViolationError.
	ErrInvariantViolation = errors.New("component invariant violation")

	// ErrInvalidScheme is returned when a scheme does not match ^[a-z][a-z0-9+.-]+$.
	ErrInvalidScheme = errors.New("invalid scheme")
	// ErrInvalidPort is returned when a port is not an integer in 1-65535.
	ErrInvalidPort = errors.New("invalid port")
	// ErrInvalidHostLabel is returned when a host label contains forbidden characters.
	ErrInvalidHostLabel = errors.New("invalid host label")
	// ErrInvalidLabelLength is returned when a host label exceeds 63 characters.
	ErrInvalidLabelLength = errors.New("invalid host label length")
	// ErrInvalidLabelCount is returned when a host would hold too few or too many labels.
	ErrInvalidLabelCount = errors.New("invalid host label count")
	// ErrInvalidHostLength is returned when the ASCII form of a host reaches 255 characters.
	ErrInvalidHostLength = errors.New("invalid host length")
	// ErrAnchorNotFound is returned when an insertion anchor cannot be resolved.
	ErrAnchorNotFound = errors.New("anchor not resolvable")
	// ErrInvalidIndex is returned when a label position is out of range.
	ErrInvalidIndex = errors.New("invalid label index")
)

type (
	// ValidationError reports a value rejected by a component's domain rules.
	// It wraps ErrValidation, the rule-specific sentinel in Err and the
	// optional underlying Cause.
	ValidationError struct {
		Component string
		Value     string
		Reason    string
		Err       error
		Cause     error
	}

	// InvariantViolationError reports an operation the component's current
	// state forbids. It signals misuse by the caller rather than bad data.
	InvariantViolationError struct {
		Op     string
		Reason string
	}
)

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s %q", e.Component, e.Value)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns ErrValidation, the specific sentinel and the cause so that
// errors.Is matches any of them.
func (e *ValidationError) Unwrap() []error {
	errs := []error{ErrValidation}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Error implements the error interface for InvariantViolationError.
func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Unwrap returns ErrInvariantViolation for errors.Is() compatibility.
func (e *InvariantViolationError) Unwrap() error { return ErrInvariantViolation }

// SPDX-License-Identifier: MPL-2.0

package urlnorm

import (
	"errors"
	"fmt"
)

// ErrParse is wrapped by every *ParseError.
var ErrParse = errors.New("cannot parse url")

// ParseError reports an input that cannot be decomposed into URL components.
// Input is the string given by the caller, before any rewriting.
type ParseError struct {
	Input  string
	Reason string
	Err    error
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("cannot parse url %q", e.Input)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap returns ErrParse and the underlying splitter error, if any.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

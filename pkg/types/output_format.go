// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// OutputText renders human-readable styled text.
	OutputText OutputFormat = "text"
	// OutputJSON renders one JSON document per result.
	OutputJSON OutputFormat = "json"
	// OutputTOML renders TOML tables.
	OutputTOML OutputFormat = "toml"
	// OutputCUE renders CUE values.
	OutputCUE OutputFormat = "cue"
)

// ErrInvalidOutputFormat is the sentinel error wrapped by InvalidOutputFormatError.
var ErrInvalidOutputFormat = errors.New("invalid output format")

type (
	// OutputFormat selects how commands print their results.
	// The zero value is invalid; callers default to OutputText.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat is not one of
	// text, json, toml or cue.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}
)

// OutputFormats lists the accepted formats in display order.
func OutputFormats() []OutputFormat {
	return []OutputFormat{OutputText, OutputJSON, OutputTOML, OutputCUE}
}

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// Validate returns an error if f is not a known format.
func (f OutputFormat) Validate() error {
	switch f {
	case OutputText, OutputJSON, OutputTOML, OutputCUE:
		return nil
	default:
		return &InvalidOutputFormatError{Value: f}
	}
}

// Error implements the error interface for InvalidOutputFormatError.
func (e *InvalidOutputFormatError) Error() string {
	names := make([]string, 0, 4)
	for _, f := range OutputFormats() {
		names = append(names, string(f))
	}
	return fmt.Sprintf("invalid output format %q (valid: %s)", e.Value, strings.Join(names, ", "))
}

// Unwrap returns ErrInvalidOutputFormat for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

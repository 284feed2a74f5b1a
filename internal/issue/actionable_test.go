// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{"operation only", &ActionableError{Operation: "parse URL"}, "failed to parse URL"},
		{
			"operation with resource",
			&ActionableError{Operation: "read URL list", Resource: "./urls.txt"},
			"failed to read URL list: ./urls.txt",
		},
		{
			"full context",
			&ActionableError{Operation: "read URL list", Resource: "./urls.txt", Cause: errors.New("file not found")},
			"failed to read URL list: ./urls.txt: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := NewErrorContext().WithOperation("normalize").Wrap(fmt.Errorf("line 3: %w", sentinel)).BuildError()
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped sentinel")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("no such file")
	err := NewErrorContext().
		WithOperation("read URL list").
		WithResource("urls.txt").
		WithSuggestion("Check the path").
		WithSuggestion("Pass URLs as arguments").
		WithIssue(BatchInputFailedId).
		Wrap(fmt.Errorf("open: %w", inner)).
		Build()

	short := err.Format(false)
	for _, want := range []string{
		"failed to read URL list: urls.txt: open: no such file",
		"\n  • Check the path",
		"\n  • Pass URLs as arguments",
		"urlnorm explain batch-input",
	} {
		if !strings.Contains(short, want) {
			t.Errorf("Format(false) = %q, missing %q", short, want)
		}
	}
	if strings.Contains(short, "Error chain") {
		t.Error("Format(false) should not include the error chain")
	}

	long := err.Format(true)
	if !strings.Contains(long, "Error chain:\n  1. open: no such file\n  2. no such file") {
		t.Errorf("Format(true) = %q, want numbered chain", long)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return nil error")
	}

	ae := NewErrorContext().WithOperation("parse URL").Build()
	if ae == nil || ae.HasSuggestions() || ae.Issue != 0 {
		t.Errorf("Build() = %+v", ae)
	}
}

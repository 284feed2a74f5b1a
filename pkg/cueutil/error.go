// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrInvalidCUE is the sentinel wrapped by every *Error.
var ErrInvalidCUE = errors.New("invalid CUE document")

type (
	// Issue is one problem reported by CUE, located by its JSON-style path.
	Issue struct {
		// Path is the JSON path to the invalid value (e.g. "urls[2]").
		Path string
		// Message is CUE's description of the problem.
		Message string
	}

	// Error collects the issues CUE reported for a single file.
	Error struct {
		FilePath string
		Issues   []Issue
		cause    error
	}
)

// Error formats the first issue inline and lists the rest indented.
//
//	urls.cue: urls[2]: conflicting values 3 and string
func (e *Error) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Path != "" {
			lines = append(lines, is.Path+": "+is.Message)
		} else {
			lines = append(lines, is.Message)
		}
	}
	switch len(lines) {
	case 0:
		return fmt.Sprintf("%s: %v", e.FilePath, e.cause)
	case 1:
		return fmt.Sprintf("%s: %s", e.FilePath, lines[0])
	default:
		return fmt.Sprintf("%s: validation failed:\n  %s", e.FilePath, strings.Join(lines, "\n  "))
	}
}

// Unwrap returns ErrInvalidCUE and the original cause.
func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrInvalidCUE}
	}
	return []error{ErrInvalidCUE, e.cause}
}

// FormatError converts a CUE error into an *Error whose issues carry JSON
// paths. Errors that CUE does not know about are wrapped with the file path.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	out := &Error{FilePath: filePath, cause: err}
	for _, ce := range cueErrs {
		path := formatPath(cueerrors.Path(ce))
		msg := ce.Error()
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		out.Issues = append(out.Issues, Issue{Path: path, Message: msg})
	}
	return out
}

// formatPath turns CUE's ["urls", "0", "href"] into "urls[0].href".
func formatPath(path []string) string {
	var sb strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			sb.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func isIndex(s string) bool {
	return s != "" && !strings.ContainsFunc(s, func(r rune) bool { return r < '0' || r > '9' })
}

// CheckFileSize returns an error when data exceeds maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}

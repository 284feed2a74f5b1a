// SPDX-License-Identifier: MPL-2.0

// Package splitter cuts a URL string into its generic-syntax parts without
// validating them.
//
// The grammar is deliberately naive: an authority is only recognized after
// "scheme://", so a scheme-relative "//host/path" comes back as a path, and a
// scheme-less reference whose first segment ends in ":digits" is rejected as
// ambiguous. Callers are expected to repair both cases.
package splitter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsplittable is wrapped by every *Error.
var ErrUnsplittable = errors.New("url cannot be split")

type (
	// Parts holds the raw substrings of a URL. Empty means absent.
	Parts struct {
		Scheme   string
		User     string
		Pass     string
		Host     string
		Port     string
		Path     string
		Query    string
		Fragment string
	}

	// Error reports an input the splitter cannot cut.
	Error struct {
		Input  string
		Reason string
	}
)

// Error implements the error interface for Error.
func (e *Error) Error() string {
	return fmt.Sprintf("cannot split %q: %s", e.Input, e.Reason)
}

// Unwrap returns ErrUnsplittable for errors.Is() compatibility.
func (e *Error) Unwrap() error { return ErrUnsplittable }

// Split cuts s into its parts.
func Split(s string) (Parts, error) {
	var p Parts
	rest, fragment, _ := strings.Cut(s, "#")
	rest, query, _ := strings.Cut(rest, "?")
	p.Fragment, p.Query = fragment, query

	scheme, afterScheme, ok := cutScheme(rest)
	if !ok {
		if portLike(firstSegment(rest)) {
			return Parts{}, &Error{Input: s, Reason: "first path segment looks like host:port"}
		}
		p.Path = rest
		return p, nil
	}

	p.Scheme = scheme
	authority, hasAuthority := strings.CutPrefix(afterScheme, "//")
	if !hasAuthority {
		p.Path = afterScheme
		return p, nil
	}

	authority, path := cutAuthority(authority)
	if authority == "" {
		return Parts{}, &Error{Input: s, Reason: "empty authority"}
	}
	p.Path = path
	if err := splitAuthority(authority, &p); err != nil {
		return Parts{}, &Error{Input: s, Reason: err.Error()}
	}
	return p, nil
}

// SplitAuthority cuts "user:pass@host:port" into p.
func SplitAuthority(authority string, p *Parts) error {
	if err := splitAuthority(authority, p); err != nil {
		return &Error{Input: authority, Reason: err.Error()}
	}
	return nil
}

func splitAuthority(authority string, p *Parts) error {
	hostport := authority
	if at := strings.LastIndexByte(authority, '@'); at >= 0 {
		userinfo := authority[:at]
		hostport = authority[at+1:]
		p.User, p.Pass, _ = strings.Cut(userinfo, ":")
	}

	host, port, err := cutPort(hostport)
	if err != nil {
		return err
	}
	p.Host, p.Port = host, port
	return nil
}

func cutPort(hostport string) (host, port string, err error) {
	if strings.HasPrefix(hostport, "[") {
		end := strings.IndexByte(hostport, ']')
		if end < 0 {
			return "", "", errors.New("unbalanced '[' in host")
		}
		host, rest := hostport[:end+1], hostport[end+1:]
		if rest == "" {
			return host, "", nil
		}
		after, ok := strings.CutPrefix(rest, ":")
		if !ok {
			return "", "", fmt.Errorf("unexpected %q after IP literal", rest)
		}
		port, err := checkPort(after)
		return host, port, err
	}
	if strings.ContainsAny(hostport, "[]") {
		return "", "", errors.New("misplaced bracket in host")
	}
	colon := strings.LastIndexByte(hostport, ':')
	if colon < 0 {
		return hostport, "", nil
	}
	port, err = checkPort(hostport[colon+1:])
	return hostport[:colon], port, err
}

func checkPort(port string) (string, error) {
	if port == "" {
		return "", nil
	}
	if !allDigits(port) {
		return "", fmt.Errorf("port %q is not numeric", port)
	}
	if n, err := strconv.Atoi(port); err != nil || n > 65535 {
		return "", fmt.Errorf("port %q is out of range", port)
	}
	return port, nil
}

func cutScheme(s string) (scheme, rest string, ok bool) {
	for i := range len(s) {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9', c == '+', c == '-', c == '.':
			if i == 0 {
				return "", s, false
			}
		case c == ':':
			if i == 0 {
				return "", s, false
			}
			return s[:i], s[i+1:], true
		default:
			return "", s, false
		}
	}
	return "", s, false
}

func cutAuthority(s string) (authority, path string) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// firstSegment returns the first non-empty segment of a path.
func firstSegment(path string) string {
	seg, _, _ := strings.Cut(strings.TrimLeft(path, "/"), "/")
	return seg
}

// portLike reports whether seg ends with ":" followed only by digits.
func portLike(seg string) bool {
	colon := strings.LastIndexByte(seg, ':')
	return colon >= 0 && allDigits(seg[colon+1:])
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

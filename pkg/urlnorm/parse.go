// SPDX-License-Identifier: MPL-2.0

package urlnorm

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/urlnorm/urlnorm/internal/escape"
	"github.com/urlnorm/urlnorm/internal/splitter"
	"github.com/urlnorm/urlnorm/pkg/component"
)

// retryScheme is prepended once when the splitter rejects a scheme-relative
// input; it is removed from the result.
const retryScheme = "http:"

var knownScheme = regexp.MustCompile(`(?i)^(http|ftp|ws)s?:`)

// Parse runs the normalization pipeline on raw.
func Parse(raw string) (URL, error) {
	sanitized, err := sanitize(strings.TrimSpace(raw))
	if err != nil {
		return URL{}, &ParseError{Input: raw, Reason: err.Error()}
	}
	parts, err := split(sanitized)
	if err != nil {
		return URL{}, &ParseError{Input: raw, Reason: "the splitter rejected it", Err: err}
	}
	return FromFields(fieldsFromParts(parts), raw)
}

// ParseText parses the textual form of v.
func ParseText(v fmt.Stringer) (URL, error) {
	return Parse(v.String())
}

// MustParse is like Parse but panics on error. It is meant for constants in
// tests and package-level variables.
func MustParse(raw string) URL {
	u, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// FromFields builds a URL from pre-split fields after repairing the known
// splitter ambiguities. original is reported in parse errors.
func FromFields(f Fields, original string) (URL, error) {
	f = repairAuthorityInPath(f)
	f, err := repairHostInPath(f, original)
	if err != nil {
		return URL{}, err
	}
	return build(f)
}

// sanitize makes inputs without a known scheme scheme-relative, and rejects
// a known scheme that is not followed by "//".
func sanitize(s string) (string, error) {
	if s == "" || strings.HasPrefix(s, "//") {
		return s, nil
	}
	loc := knownScheme.FindStringIndex(s)
	if loc == nil {
		return "//" + s, nil
	}
	if !strings.HasPrefix(s[loc[1]:], "//") {
		return "", errors.New("scheme is not followed by \"//\"")
	}
	return s, nil
}

func split(s string) (splitter.Parts, error) {
	parts, err := splitter.Split(s)
	if err == nil || !strings.HasPrefix(s, "/") {
		return parts, err
	}
	parts, retryErr := splitter.Split(retryScheme + s)
	if retryErr != nil {
		return splitter.Parts{}, err
	}
	parts.Scheme = ""
	return parts, nil
}

// repairAuthorityInPath handles "user:pass@host/path" read as scheme "user"
// and path "pass@host/path".
func repairAuthorityInPath(f Fields) Fields {
	if f.Scheme == "" || f.Host != "" || !strings.Contains(f.Path, "@") {
		return f
	}
	pass, rest, _ := strings.Cut(f.Path, "@")
	f.User, f.Pass = f.Scheme, pass
	f.Scheme = ""
	f.Path = "//" + rest
	return f
}

// repairHostInPath handles "//host/path" read as a path.
func repairHostInPath(f Fields, original string) (Fields, error) {
	if f.Scheme != "" || f.Host != "" || !strings.HasPrefix(f.Path, "//") {
		return f, nil
	}
	if strings.HasPrefix(f.Path, "///") {
		return Fields{}, &ParseError{Input: original, Reason: "path starts with \"///\""}
	}

	authority, path, found := strings.Cut(f.Path[2:], "/")
	if found {
		path = "/" + path
	}

	var p splitter.Parts
	if err := splitter.SplitAuthority(authority, &p); err != nil {
		return Fields{}, &ParseError{Input: original, Reason: "invalid authority", Err: err}
	}
	if strings.Contains(authority, "@") {
		f.User, f.Pass = p.User, p.Pass
	}
	f.Host, f.Port, f.Path = p.Host, p.Port, path
	return f, nil
}

func build(f Fields) (URL, error) {
	scheme, err := component.NewScheme(f.Scheme)
	if err != nil {
		return URL{}, err
	}
	host, err := component.NewHost(f.Host)
	if err != nil {
		return URL{}, err
	}
	port, err := component.NewPort(f.Port)
	if err != nil {
		return URL{}, err
	}
	return URL{
		scheme:   scheme,
		user:     component.NewUser(f.User),
		pass:     component.NewPass(f.Pass),
		host:     host,
		port:     port,
		path:     component.NewPath(f.Path),
		query:    component.NewQuery(f.Query),
		fragment: component.NewFragment(escape.Unescape(f.Fragment)),
	}, nil
}

func fieldsFromParts(p splitter.Parts) Fields {
	return Fields{
		Scheme:   p.Scheme,
		User:     p.User,
		Pass:     p.Pass,
		Host:     p.Host,
		Port:     p.Port,
		Path:     p.Path,
		Query:    p.Query,
		Fragment: p.Fragment,
	}
}

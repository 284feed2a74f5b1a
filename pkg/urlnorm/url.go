// SPDX-License-Identifier: MPL-2.0

package urlnorm

import (
	"github.com/urlnorm/urlnorm/pkg/component"
)

type (
	// URL aggregates the eight components of a URL. The zero value is the
	// empty URL. URL values are immutable; copies never share state.
	URL struct {
		scheme   component.Scheme
		user     component.User
		pass     component.Pass
		host     component.Host
		port     component.Port
		path     component.Path
		query    component.Query
		fragment component.Fragment
	}

	// Fields is the flat view of a URL: every component in its serialized
	// form without decoration, as a generic splitter would report it.
	Fields struct {
		Scheme   string `json:"scheme,omitempty" toml:"scheme,omitempty"`
		User     string `json:"user,omitempty" toml:"user,omitempty"`
		Pass     string `json:"pass,omitempty" toml:"pass,omitempty"`
		Host     string `json:"host,omitempty" toml:"host,omitempty"`
		Port     string `json:"port,omitempty" toml:"port,omitempty"`
		Path     string `json:"path,omitempty" toml:"path,omitempty"`
		Query    string `json:"query,omitempty" toml:"query,omitempty"`
		Fragment string `json:"fragment,omitempty" toml:"fragment,omitempty"`
	}
)

// New assembles a URL from pre-built components.
func New(
	scheme component.Scheme,
	user component.User,
	pass component.Pass,
	host component.Host,
	port component.Port,
	path component.Path,
	query component.Query,
	fragment component.Fragment,
) URL {
	return URL{
		scheme:   scheme,
		user:     user,
		pass:     pass,
		host:     host.Clone(),
		port:     port,
		path:     path.Clone(),
		query:    query.Clone(),
		fragment: fragment,
	}
}

// Scheme returns the scheme component.
func (u URL) Scheme() component.Scheme { return u.scheme }

// User returns the user component.
func (u URL) User() component.User { return u.user }

// Pass returns the password component.
func (u URL) Pass() component.Pass { return u.pass }

// Host returns a copy of the host component.
func (u URL) Host() component.Host { return u.host.Clone() }

// Port returns the port component.
func (u URL) Port() component.Port { return u.port }

// Path returns a copy of the path component.
func (u URL) Path() component.Path { return u.path.Clone() }

// Query returns a copy of the query component.
func (u URL) Query() component.Query { return u.query.Clone() }

// Fragment returns the fragment component.
func (u URL) Fragment() component.Fragment { return u.fragment }

// String returns the canonical serialization. A URL without host, path,
// query and fragment serializes as "".
func (u URL) String() string {
	s := u.BaseURL() + u.RelativeURL()
	if s == "/" {
		return ""
	}
	return s
}

// ToASCII is String with the host in ASCII-compatible form.
func (u URL) ToASCII() string {
	s := u.baseURL(u.asciiHost()) + u.RelativeURL()
	if s == "/" {
		return ""
	}
	return s
}

// BaseURL returns scheme and authority. A host without scheme is introduced
// by "//".
func (u URL) BaseURL() string {
	return u.baseURL(u.host.URIComponent())
}

func (u URL) baseURL(host string) string {
	scheme := u.scheme.URIComponent()
	userinfo := u.user.URIComponent() + u.pass.URIComponent()
	if userinfo != "" {
		userinfo += "@"
	}
	if host != "" && scheme == "" {
		scheme = "//"
	}
	return scheme + userinfo + host + u.port.URIComponent()
}

func (u URL) asciiHost() string {
	if u.host.IsIPv6() {
		return u.host.URIComponent()
	}
	return u.host.ToASCII()
}

// RelativeURL returns path, query and fragment.
func (u URL) RelativeURL() string {
	return u.path.URIComponent() + u.query.URIComponent() + u.fragment.URIComponent()
}

// RelativeTo returns the reference that resolves to u from ref. When both
// URLs do not share the same base URL the full serialization is returned.
func (u URL) RelativeTo(ref URL) string {
	if u.BaseURL() != ref.BaseURL() {
		return u.String()
	}
	return u.path.RelativeTo(ref.path) + u.query.URIComponent() + u.fragment.URIComponent()
}

// SameValueAs reports whether both URLs have the same canonical serialization.
func (u URL) SameValueAs(other URL) bool { return u.String() == other.String() }

// IsEmpty reports whether the URL serializes to "".
func (u URL) IsEmpty() bool { return u.String() == "" }

// Clone returns a deep copy of u.
func (u URL) Clone() URL {
	return New(u.scheme, u.user, u.pass, u.host, u.port, u.path, u.query, u.fragment)
}

// Fields returns the flat view of the URL. Passing it back to FromFields
// yields an equal URL.
func (u URL) Fields() Fields {
	f := Fields{
		Scheme:   u.scheme.Get(),
		User:     u.user.Get(),
		Pass:     u.pass.Get(),
		Host:     u.host.URIComponent(),
		Port:     u.port.String(),
		Query:    u.query.String(),
		Fragment: u.fragment.String(),
	}
	if !u.path.IsEmpty() {
		f.Path = u.path.URIComponent()
	}
	return f
}

// MarshalText implements encoding.TextMarshaler.
func (u URL) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler by running Parse.
func (u *URL) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

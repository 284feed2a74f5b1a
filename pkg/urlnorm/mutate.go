// SPDX-License-Identifier: MPL-2.0

package urlnorm

import "github.com/urlnorm/urlnorm/pkg/component"

// WithScheme returns a copy of u with the scheme replaced.
func (u URL) WithScheme(scheme string) (URL, error) {
	c := u.Clone()
	if err := c.scheme.Set(scheme); err != nil {
		return u, err
	}
	return c, nil
}

// WithUser returns a copy of u with the user replaced.
func (u URL) WithUser(user string) URL {
	c := u.Clone()
	c.user = component.NewUser(user)
	return c
}

// WithPass returns a copy of u with the password replaced.
func (u URL) WithPass(pass string) URL {
	c := u.Clone()
	c.pass = component.NewPass(pass)
	return c
}

// WithHost returns a copy of u with the host replaced.
func (u URL) WithHost(host string) (URL, error) {
	h, err := component.NewHost(host)
	if err != nil {
		return u, err
	}
	c := u.Clone()
	c.host = h
	return c, nil
}

// WithPort returns a copy of u with the port replaced; "" removes it.
func (u URL) WithPort(port string) (URL, error) {
	p, err := component.NewPort(port)
	if err != nil {
		return u, err
	}
	c := u.Clone()
	c.port = p
	return c, nil
}

// WithPath returns a copy of u with the path replaced.
func (u URL) WithPath(path string) URL {
	c := u.Clone()
	c.path = component.NewPath(path)
	return c
}

// WithQuery returns a copy of u with the query replaced.
func (u URL) WithQuery(query string) URL {
	c := u.Clone()
	c.query = component.NewQuery(query)
	return c
}

// MergeQuery returns a copy of u with query merged over the current one.
func (u URL) MergeQuery(query string) URL {
	c := u.Clone()
	c.query.Modify(query)
	return c
}

// WithFragment returns a copy of u with the fragment replaced. fragment is
// taken as decoded text.
func (u URL) WithFragment(fragment string) URL {
	c := u.Clone()
	c.fragment = component.NewFragment(fragment)
	return c
}

// EditHost runs edit on a copy of the host and returns a URL holding the
// result. When edit fails, u is returned unchanged with the error.
func (u URL) EditHost(edit func(h *component.Host) error) (URL, error) {
	h := u.host.Clone()
	if err := edit(&h); err != nil {
		return u, err
	}
	c := u.Clone()
	c.host = h
	return c, nil
}

// EditPath runs edit on a copy of the path and returns a URL holding the
// result. When edit fails, u is returned unchanged with the error.
func (u URL) EditPath(edit func(p *component.Path) error) (URL, error) {
	p := u.path.Clone()
	if err := edit(&p); err != nil {
		return u, err
	}
	c := u.Clone()
	c.path = p
	return c, nil
}

// EditQuery runs edit on a copy of the query and returns a URL holding the
// result.
func (u URL) EditQuery(edit func(q *component.Query)) URL {
	q := u.query.Clone()
	edit(&q)
	c := u.Clone()
	c.query = q
	return c
}

// SPDX-License-Identifier: MPL-2.0

package component

import (
	"slices"
	"testing"
)

func TestParseQuery_Nested(t *testing.T) {
	t.Parallel()

	tree := ParseQuery("a[b][c]=v&a[b][d]=w")
	a, ok := tree.Get("a")
	if !ok || !a.IsTree() {
		t.Fatalf("a = %+v, want nested tree", a)
	}
	b, ok := a.Tree.Get("b")
	if !ok || !b.IsTree() {
		t.Fatalf("a[b] = %+v, want nested tree", b)
	}
	if got := b.Tree.Keys(); !slices.Equal(got, []string{"c", "d"}) {
		t.Errorf("a[b] keys = %v, want [c d]", got)
	}
	c, _ := b.Tree.Get("c")
	d, _ := b.Tree.Get("d")
	if c.Scalar != "v" || d.Scalar != "w" {
		t.Errorf("a[b][c] = %q, a[b][d] = %q", c.Scalar, d.Scalar)
	}

	q := Query{}
	q.SetTree(tree)
	if got, want := q.String(), "a%5Bb%5D%5Bc%5D=v&a%5Bb%5D%5Bd%5D=w"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	again := NewQuery(q.String())
	if !again.SameValueAs(q) {
		t.Errorf("reparsed query %q differs from %q", again.String(), q.String())
	}
}

func TestQuery_Serialize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"?name=ferret", "name=ferret"},
		{"name=ferret&color=purple", "name=ferret&color=purple"},
		{"flag", "flag="},
		{"a=1&b=&c", "a=1&b=&c="},
		{"q=a+b", "q=a%20b"},
		{"q=a%20b", "q=a%20b"},
		{"q=1%2B1", "q=1%2B1"},
		{"x=1&x=2", "x=2"},
		{"x=1&y=2&x=3", "x=3&y=2"},
		{"a[]=1&a[]=2", "a=2"},
		{"&&a=1&", "a=1"},
		{"=orphan&b=1", "b=1"},
		{"a=1&a[b]=2", "a%5Bb%5D=2"},
		{"t=~", "t=~"},
		{"bad=%zz", "bad=%25zz"},
		{"q=%41%ZZ", "q=A%25ZZ"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			q := NewQuery(tt.in)
			if got := q.String(); got != tt.want {
				t.Errorf("NewQuery(%q).String() = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuery_Empty(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "?", "&", "=x"} {
		q := NewQuery(in)
		if !q.IsEmpty() {
			t.Errorf("NewQuery(%q) should be empty", in)
		}
		if s, ok := q.Get(); ok || s != "" {
			t.Errorf("NewQuery(%q).Get() = %q, %v, want absent", in, s, ok)
		}
		if q.URIComponent() != "" {
			t.Errorf("NewQuery(%q).URIComponent() = %q", in, q.URIComponent())
		}
	}
}

func TestQuery_Modify(t *testing.T) {
	t.Parallel()

	q := NewQuery("a[b]=1&a[c]=2&z=0")
	q.Modify("a[c]=3&a[d]=4&y=5")
	if got, want := q.String(), "a%5Bb%5D=1&a%5Bc%5D=3&a%5Bd%5D=4&z=0&y=5"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	q.Modify("a=flat")
	if got, want := q.String(), "a=flat&z=0&y=5"; got != want {
		t.Errorf("String() after scalar overwrite = %q, want %q", got, want)
	}
}

func TestQuery_SetPairs(t *testing.T) {
	t.Parallel()

	var q Query
	q.SetPairs(QueryPair{Key: "user[name]", Value: "ann lee"}, QueryPair{Key: "page", Value: "2"})
	if got, want := q.URIComponent(), "?user%5Bname%5D=ann%20lee&page=2"; got != want {
		t.Errorf("URIComponent() = %q, want %q", got, want)
	}
	if got := q.Keys(); !slices.Equal(got, []string{"user", "page"}) {
		t.Errorf("Keys() = %v", got)
	}
	v, ok := q.Lookup("page")
	if !ok || v.Scalar != "2" {
		t.Errorf("Lookup(page) = %+v, %v", v, ok)
	}
}

func TestQuery_TreeIsCopy(t *testing.T) {
	t.Parallel()

	q := NewQuery("a=1")
	tree := q.Tree()
	tree.SetScalar("b", "2")
	if got := q.String(); got != "a=1" {
		t.Errorf("mutating Tree() copy changed query to %q", got)
	}

	shared := q
	shared.Modify("c=3")
	if got := q.String(); got != "a=1" {
		t.Errorf("modifying a copy changed the original to %q", got)
	}
}

func TestQueryTree_Delete(t *testing.T) {
	t.Parallel()

	tree := ParseQuery("a=1&b=2&c=3")
	tree.Delete("b")
	tree.Delete("missing")
	if got := tree.Keys(); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Keys() = %v, want [a c]", got)
	}
}

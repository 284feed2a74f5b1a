// SPDX-License-Identifier: MPL-2.0

package component

import (
	"slices"
	"strings"

	"github.com/urlnorm/urlnorm/internal/escape"
)

type (
	// QueryValue is either a scalar string or a nested tree.
	QueryValue struct {
		Scalar string
		Tree   *QueryTree
	}

	// QueryTree is an ordered mapping from keys to values. Keys keep the
	// position of their first insertion.
	QueryTree struct {
		keys   []string
		values map[string]QueryValue
	}

	// QueryPair is a single raw key/value pair. Keys may use bracket syntax.
	QueryPair struct {
		Key   string
		Value string
	}

	// Query is the query component. The zero value is an empty query.
	Query struct {
		tree *QueryTree
	}
)

// NewQueryTree returns an empty tree.
func NewQueryTree() *QueryTree {
	return &QueryTree{values: make(map[string]QueryValue)}
}

// IsTree reports whether v holds a nested tree.
func (v QueryValue) IsTree() bool { return v.Tree != nil }

// Len returns the number of keys.
func (t *QueryTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *QueryTree) Keys() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.keys)
}

// Get returns the value stored under key.
func (t *QueryTree) Get(key string) (QueryValue, bool) {
	if t == nil {
		return QueryValue{}, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Set stores a value under key. An existing key keeps its position.
func (t *QueryTree) Set(key string, v QueryValue) {
	if t.values == nil {
		t.values = make(map[string]QueryValue)
	}
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// SetScalar stores a scalar value under key.
func (t *QueryTree) SetScalar(key, value string) { t.Set(key, QueryValue{Scalar: value}) }

// Delete removes key.
func (t *QueryTree) Delete(key string) {
	if _, ok := t.values[key]; !ok {
		return
	}
	delete(t.values, key)
	t.keys = slices.DeleteFunc(slices.Clone(t.keys), func(k string) bool { return k == key })
}

// Clone returns a deep copy of the tree.
func (t *QueryTree) Clone() *QueryTree {
	if t == nil {
		return nil
	}
	c := &QueryTree{keys: slices.Clone(t.keys), values: make(map[string]QueryValue, len(t.values))}
	for k, v := range t.values {
		if v.Tree != nil {
			v.Tree = v.Tree.Clone()
		}
		c.values[k] = v
	}
	return c
}

// Merge recursively merges other into t. Nested trees merge key by key,
// any other value overwrites.
func (t *QueryTree) Merge(other *QueryTree) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		incoming := other.values[key]
		if current, ok := t.values[key]; ok && current.IsTree() && incoming.IsTree() {
			merged := current.Tree.Clone()
			merged.Merge(incoming.Tree)
			t.Set(key, QueryValue{Tree: merged})
			continue
		}
		if incoming.Tree != nil {
			incoming.Tree = incoming.Tree.Clone()
		}
		t.Set(key, incoming)
	}
}

// Pairs flattens the tree into bracketed key/value pairs, in order.
// Empty nested trees produce no pair.
func (t *QueryTree) Pairs() []QueryPair {
	var pairs []QueryPair
	t.flatten("", &pairs)
	return pairs
}

func (t *QueryTree) flatten(prefix string, pairs *[]QueryPair) {
	if t == nil {
		return
	}
	for _, key := range t.keys {
		full := key
		if prefix != "" {
			full = prefix + "[" + key + "]"
		}
		v := t.values[key]
		if v.IsTree() {
			v.Tree.flatten(full, pairs)
			continue
		}
		*pairs = append(*pairs, QueryPair{Key: full, Value: v.Scalar})
	}
}

// assign walks the bracket path of key, creating nested trees as needed,
// and stores value at its end. Scalars met on the way are replaced by trees.
func (t *QueryTree) assign(key, value string) {
	path := splitQueryKey(key)
	if len(path) == 0 {
		return
	}
	node := t
	for _, part := range path[:len(path)-1] {
		next, ok := node.values[part]
		if !ok || !next.IsTree() {
			next = QueryValue{Tree: NewQueryTree()}
			node.Set(part, next)
		}
		node = next.Tree
	}
	node.SetScalar(path[len(path)-1], value)
}

// splitQueryKey tokenizes "a[b][c]" into [a b c]. Empty tokens are dropped.
func splitQueryKey(key string) []string {
	return strings.FieldsFunc(key, func(r rune) bool { return r == '[' || r == ']' })
}

// ParseQuery parses a query string into a tree. A leading "?" is ignored,
// pairs are split on "&" and on their first "=" (a missing value is ""), keys
// and values are form-decoded, and bracketed keys produce nested trees.
// Pairs with an empty key are skipped; a repeated key keeps its first
// position and its last value.
func ParseQuery(raw string) *QueryTree {
	raw = strings.TrimPrefix(raw, "?")
	tree := NewQueryTree()
	if raw == "" {
		return tree
	}
	for part := range strings.SplitSeq(raw, "&") {
		key, value, _ := strings.Cut(part, "=")
		tree.assign(escape.UnescapeQuery(key), escape.UnescapeQuery(value))
	}
	return tree
}

// QueryFromPairs builds a tree from raw pairs; bracketed keys nest.
func QueryFromPairs(pairs ...QueryPair) *QueryTree {
	tree := NewQueryTree()
	for _, p := range pairs {
		tree.assign(p.Key, p.Value)
	}
	return tree
}

// NewQuery returns a Query parsed from raw.
func NewQuery(raw string) Query {
	var q Query
	q.Set(raw)
	return q
}

// Set replaces the query with the parsed raw string.
func (q *Query) Set(raw string) { q.SetTree(ParseQuery(raw)) }

// SetTree replaces the query with a copy of tree.
func (q *Query) SetTree(tree *QueryTree) {
	if tree.Len() == 0 {
		q.tree = nil
		return
	}
	q.tree = tree.Clone()
}

// SetPairs replaces the query with the given pairs.
func (q *Query) SetPairs(pairs ...QueryPair) { q.SetTree(QueryFromPairs(pairs...)) }

// Modify merges the parsed raw string over the current query.
func (q *Query) Modify(raw string) { q.ModifyTree(ParseQuery(raw)) }

// ModifyTree merges tree over the current query.
func (q *Query) ModifyTree(tree *QueryTree) {
	merged := q.tree.Clone()
	if merged == nil {
		merged = NewQueryTree()
	}
	merged.Merge(tree)
	q.SetTree(merged)
}

// Get returns the serialized query; ok is false when the query is empty.
func (q Query) Get() (string, bool) {
	pairs := q.tree.Pairs()
	if len(pairs) == 0 {
		return "", false
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = escape.QueryComponent(p.Key) + "=" + escape.QueryComponent(p.Value)
	}
	return strings.Join(parts, "&"), true
}

// String returns the serialized query, or "" when empty.
func (q Query) String() string {
	s, _ := q.Get()
	return s
}

// URIComponent returns "?query", or "" when empty.
func (q Query) URIComponent() string {
	if s, ok := q.Get(); ok {
		return "?" + s
	}
	return ""
}

// IsEmpty reports whether the query holds no key.
func (q Query) IsEmpty() bool { return q.tree.Len() == 0 }

// Len returns the number of top-level keys.
func (q Query) Len() int { return q.tree.Len() }

// Keys returns the top-level keys in order.
func (q Query) Keys() []string { return q.tree.Keys() }

// Lookup returns the value stored under a top-level key.
func (q Query) Lookup(key string) (QueryValue, bool) { return q.tree.Get(key) }

// Tree returns a copy of the underlying tree.
func (q Query) Tree() *QueryTree {
	if q.tree == nil {
		return NewQueryTree()
	}
	return q.tree.Clone()
}

// SameValueAs reports whether both queries serialize identically.
func (q Query) SameValueAs(other Query) bool { return q.String() == other.String() }

// Clone returns a deep copy of the query.
func (q Query) Clone() Query { return Query{tree: q.tree.Clone()} }

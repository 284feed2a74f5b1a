// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
)

// Marshal encodes v as formatted CUE source. Struct fields use their json
// tag names. A struct is emitted as top-level fields, without braces.
func Marshal(v any) ([]byte, error) {
	val := cuecontext.New().Encode(v)
	if err := val.Err(); err != nil {
		return nil, fmt.Errorf("encode CUE value: %w", err)
	}
	node := val.Syntax(cue.Final())
	if lit, ok := node.(*ast.StructLit); ok {
		node = &ast.File{Decls: lit.Elts}
	}
	out, err := format.Node(node, format.Simplify())
	if err != nil {
		return nil, fmt.Errorf("format CUE value: %w", err)
	}
	return out, nil
}

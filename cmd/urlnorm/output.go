// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/urlnorm/urlnorm/pkg/component"
	"github.com/urlnorm/urlnorm/pkg/cueutil"
	"github.com/urlnorm/urlnorm/pkg/types"
)

// render writes v in the configured structured format. For text output it
// calls text instead. v must be a struct or map so every encoder accepts it.
func (a *App) render(w io.Writer, v any, text func(io.Writer) error) error {
	return encode(w, a.cfg.Output.Format, v, text)
}

func encode(w io.Writer, format types.OutputFormat, v any, text func(io.Writer) error) error {
	switch format {
	case types.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case types.OutputTOML:
		return toml.NewEncoder(w).Encode(v)
	case types.OutputCUE:
		data, err := cueutil.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode cue: %w", err)
		}
		if !bytes.HasSuffix(data, []byte("\n")) {
			data = append(data, '\n')
		}
		_, err = w.Write(data)
		return err
	default:
		return text(w)
	}
}

// keyValues prints aligned "key  value" lines, skipping empty values.
func keyValues(w io.Writer, pairs ...[2]string) {
	width := 0
	for _, p := range pairs {
		if p[1] != "" && len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		fmt.Fprintf(w, "%s  %s\n", KeyStyle.Render(fmt.Sprintf("%-*s", width, p[0])), p[1])
	}
}

// queryValues converts a query tree into nested maps for the structured
// encoders.
func queryValues(t *component.QueryTree) map[string]any {
	out := make(map[string]any, t.Len())
	for _, key := range t.Keys() {
		v, _ := t.Get(key)
		if v.IsTree() {
			out[key] = queryValues(v.Tree)
		} else {
			out[key] = v.Scalar
		}
	}
	return out
}

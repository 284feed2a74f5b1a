// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/urlnorm/urlnorm/pkg/component"
)

// queryOutput is the structured form of `urlnorm query`.
type queryOutput struct {
	Query  string         `json:"query" toml:"query"`
	Params map[string]any `json:"params" toml:"params"`
}

func newQueryCommand(app *App) *cobra.Command {
	var merge []string

	cmd := &cobra.Command{
		Use:   "query <query>",
		Short: "Parse a query string into its parameter tree",
		Long: `Parse a query string, with or without the leading '?', into nested
parameters. Bracketed keys such as a[b][c] build a tree; repeated keys keep
the last value. Each --merge query is merged recursively on top.`,
		Example: `  urlnorm query 'a=1&b[x]=2&b[y]=3'
  urlnorm query 'page=1&sort=asc' --merge 'page=2'`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := component.NewQuery(strings.TrimPrefix(args[0], "?"))
			for _, m := range merge {
				q.Modify(strings.TrimPrefix(m, "?"))
			}

			out := queryOutput{Query: q.String(), Params: queryValues(q.Tree())}
			return app.render(cmd.OutOrStdout(), out, func(w io.Writer) error {
				if q.IsEmpty() {
					_, err := fmt.Fprintln(w, SubtitleStyle.Render("(empty query)"))
					return err
				}
				fmt.Fprintln(w, out.Query)
				for _, p := range q.Tree().Pairs() {
					fmt.Fprintf(w, "  %s = %s\n", KeyStyle.Render(p.Key), p.Value)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&merge, "merge", nil, "query string merged on top (repeatable)")
	return cmd
}

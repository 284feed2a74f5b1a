// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/urlnorm/urlnorm/internal/issue"
)

type (
	// explainEntry is one catalog page in structured output.
	explainEntry struct {
		Slug    string `json:"slug" toml:"slug"`
		Summary string `json:"summary,omitempty" toml:"summary,omitempty"`
	}

	explainOutput struct {
		Issues []explainEntry `json:"issues" toml:"issues"`
	}
)

func newExplainCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [topic]",
		Short: "Explain an error reported by urlnorm",
		Long: `Explain an error reported by urlnorm. Without a topic, list the topics.
Error messages end with the topic to pass here.`,
		Example: `  urlnorm explain
  urlnorm explain invalid-host`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			slugs := make([]string, 0, len(issue.Values()))
			for _, is := range issue.Values() {
				slugs = append(slugs, is.Slug())
			}
			return slugs, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listIssues(cmd, app)
			}

			is, ok := issue.Lookup(args[0])
			if !ok {
				return usageError(fmt.Errorf("unknown topic %q, run 'urlnorm explain' to list topics", args[0]))
			}
			rendered, err := is.Render(app.cfg.UI.ColorScheme.String())
			if err != nil {
				return fmt.Errorf("render %s: %w", is.Slug(), err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func listIssues(cmd *cobra.Command, app *App) error {
	out := explainOutput{}
	for _, is := range issue.Values() {
		out.Issues = append(out.Issues, explainEntry{Slug: is.Slug(), Summary: is.Title()})
	}
	return app.render(cmd.OutOrStdout(), out, func(w io.Writer) error {
		fmt.Fprintln(w, TitleStyle.Render("Topics"))
		for _, e := range out.Issues {
			fmt.Fprintf(w, "  %s  %s\n", KeyStyle.Render(fmt.Sprintf("%-15s", e.Slug)), SubtitleStyle.Render(e.Summary))
		}
		return nil
	})
}

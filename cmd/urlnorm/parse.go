// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/urlnorm/urlnorm/pkg/urlnorm"
)

// parseOutput is the structured form of `urlnorm parse`.
type parseOutput struct {
	URL        string         `json:"url" toml:"url"`
	ASCII      string         `json:"ascii" toml:"ascii"`
	Components urlnorm.Fields `json:"components" toml:"components"`
}

func newParseCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <url>",
		Short: "Split a URL into its normalized components",
		Long: `Split a URL into scheme, user, password, host, port, path, query and
fragment. Every component is validated and printed in canonical form.`,
		Example: `  urlnorm parse 'HTTP://User:Pw@Example.COM:8080/a b?x=1#top'
  urlnorm parse --format json example.com/path`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, app, args[0])
		},
	}
}

func runParse(cmd *cobra.Command, app *App, raw string) error {
	u, err := urlnorm.Parse(raw)
	if err != nil {
		return app.inputError("parse URL", raw, err)
	}
	app.log.Debug("parsed", "input", raw, "canonical", u.String())

	out := parseOutput{URL: u.String(), ASCII: u.ToASCII(), Components: u.Fields()}
	return app.render(cmd.OutOrStdout(), out, func(w io.Writer) error {
		f := out.Components
		ascii := out.ASCII
		if ascii == out.URL {
			ascii = ""
		}
		keyValues(w,
			[2]string{"url", out.URL},
			[2]string{"ascii", ascii},
			[2]string{"scheme", f.Scheme},
			[2]string{"user", f.User},
			[2]string{"pass", f.Pass},
			[2]string{"host", f.Host},
			[2]string{"port", f.Port},
			[2]string{"path", f.Path},
			[2]string{"query", f.Query},
			[2]string{"fragment", f.Fragment},
		)
		return nil
	})
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/urlnorm/urlnorm/pkg/types"
	"github.com/urlnorm/urlnorm/pkg/urlnorm"
)

type (
	// resolveOutput is the structured form of `urlnorm resolve`.
	resolveOutput struct {
		URL       string `json:"url" toml:"url"`
		Base      string `json:"base" toml:"base"`
		Reference string `json:"reference" toml:"reference"`
	}

	// compareOutput is the structured form of `urlnorm compare`.
	compareOutput struct {
		Left  string `json:"left" toml:"left"`
		Right string `json:"right" toml:"right"`
		Equal bool   `json:"equal" toml:"equal"`
	}
)

func newResolveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <url> <base>",
		Short: "Print the reference that leads from base to url",
		Long: `Print the shortest reference that resolves to <url> when followed from
<base>. URLs with a different scheme or authority are printed in full.`,
		Example: `  urlnorm resolve http://example.com/a/b/c http://example.com/a/d  # b/c`,
		Args:    usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, base, err := app.parsePair(args[0], args[1])
			if err != nil {
				return err
			}
			out := resolveOutput{URL: u.String(), Base: base.String(), Reference: u.RelativeTo(base)}
			return app.render(cmd.OutOrStdout(), out, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, out.Reference)
				return err
			})
		},
	}
}

func newCompareCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <url> <url>",
		Short: "Check whether two URLs normalize to the same value",
		Long: `Check whether two URLs normalize to the same value.

Exit status is 0 when they are equal, 1 when they differ and 2 when either
input cannot be parsed.`,
		Example: `  urlnorm compare HTTP://Example.com http://example.com/`,
		Args:    usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, right, err := app.parsePair(args[0], args[1])
			if err != nil {
				return err
			}
			out := compareOutput{Left: left.String(), Right: right.String(), Equal: left.SameValueAs(right)}
			err = app.render(cmd.OutOrStdout(), out, func(w io.Writer) error {
				if out.Equal {
					_, err := fmt.Fprintln(w, SuccessStyle.Render("equal")+" "+out.Left)
					return err
				}
				_, err := fmt.Fprintf(w, "%s\n  %s\n  %s\n", WarningStyle.Render("different"), out.Left, out.Right)
				return err
			})
			if err != nil {
				return err
			}
			if !out.Equal {
				cmd.SilenceErrors = true
				return &ExitError{Code: types.ExitFailure}
			}
			return nil
		},
	}
}

func (a *App) parsePair(first, second string) (urlnorm.URL, urlnorm.URL, error) {
	u, err := urlnorm.Parse(first)
	if err != nil {
		return urlnorm.URL{}, urlnorm.URL{}, a.inputError("parse URL", first, err)
	}
	v, err := urlnorm.Parse(second)
	if err != nil {
		return urlnorm.URL{}, urlnorm.URL{}, a.inputError("parse URL", second, err)
	}
	return u, v, nil
}

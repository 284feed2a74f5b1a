// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/urlnorm/urlnorm/pkg/punycode"
)

// punycodeOutput is the structured form of `urlnorm punycode`.
type punycodeOutput struct {
	Input  string `json:"input" toml:"input"`
	Output string `json:"output" toml:"output"`
}

func newPunycodeCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "punycode",
		Short: "Convert domain names between Unicode and ACE form",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "encode <domain>",
		Short:   "Convert a Unicode domain to ASCII (xn--) labels",
		Example: `  urlnorm punycode encode bücher.example  # xn--bcher-kva.example`,
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPunycode(cmd, app, "encode", args[0], punycode.ToASCII)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "decode <domain>",
		Short:   "Convert xn-- labels of a domain back to Unicode",
		Example: `  urlnorm punycode decode xn--bcher-kva.example  # bücher.example`,
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPunycode(cmd, app, "decode", args[0], punycode.ToUnicode)
		},
	})

	return cmd
}

func runPunycode(cmd *cobra.Command, app *App, op, input string, convert func(string) (string, error)) error {
	result, err := convert(input)
	if err != nil {
		return app.inputError(op+" domain", input, err)
	}
	out := punycodeOutput{Input: input, Output: result}
	return app.render(cmd.OutOrStdout(), out, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, out.Output)
		return err
	})
}

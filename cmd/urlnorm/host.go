// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/urlnorm/urlnorm/pkg/component"
)

// hostOutput is the structured form of `urlnorm host`.
type hostOutput struct {
	Host    string   `json:"host" toml:"host"`
	ASCII   string   `json:"ascii" toml:"ascii"`
	Unicode string   `json:"unicode" toml:"unicode"`
	Kind    string   `json:"kind" toml:"kind"`
	Labels  []string `json:"labels" toml:"labels"`
}

func newHostCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "host <host>",
		Short: "Validate a host and show its ASCII and Unicode forms",
		Long: `Validate a registered name or IP address and print its canonical form,
its ASCII (xn--) and Unicode forms, its kind and its labels.`,
		Example: `  urlnorm host Bücher.Example
  urlnorm host xn--d1abbgf6aiiy.xn--p1ai
  urlnorm host '[2001:DB8::1]'`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := component.NewHost(args[0])
			if err != nil {
				return app.inputError("validate host", args[0], err)
			}

			out := hostOutput{
				Host:    h.URIComponent(),
				ASCII:   h.ToASCII(),
				Unicode: h.ToUnicode(),
				Kind:    hostKind(h),
				Labels:  h.Labels(),
			}
			return app.render(cmd.OutOrStdout(), out, func(w io.Writer) error {
				keyValues(w,
					[2]string{"host", out.Host},
					[2]string{"ascii", out.ASCII},
					[2]string{"unicode", out.Unicode},
					[2]string{"kind", out.Kind},
					[2]string{"labels", strings.Join(out.Labels, " ")},
				)
				return nil
			})
		},
	}
}

func hostKind(h component.Host) string {
	switch {
	case h.IsIPv4():
		return "ipv4"
	case h.IsIPv6():
		return "ipv6"
	default:
		return "name"
	}
}

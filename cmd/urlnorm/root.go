// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for urlnorm.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/urlnorm/urlnorm/internal/issue"
	"github.com/urlnorm/urlnorm/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "urlnorm",
		Short: "Decompose and normalize URLs",
		Long: TitleStyle.Render("urlnorm") + SubtitleStyle.Render(" - decompose and normalize URLs") + `

urlnorm splits URLs into scheme, user, password, host, port, path, query
and fragment, validates every component and prints the canonical form.
Internationalized hosts are converted between Unicode and ACE (xn--) form.

` + SubtitleStyle.Render("Examples:") + `
  urlnorm parse 'HTTP://User@Example.COM:8080/a?x=1'
  urlnorm normalize example.com/a%20b 'http://xn--p1ai.ru/'
  urlnorm normalize --file urls.txt --watch
  urlnorm compare http://EXAMPLE.com http://example.com/
  urlnorm punycode encode bücher.example
  urlnorm explain parse-failed`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init(cmd)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&app.flags.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/urlnorm/config.cue)")
	flags.StringVarP(&app.flags.format, "format", "f", "", "output format: text, json, toml or cue (default from config)")

	rootCmd.AddCommand(
		newParseCommand(app),
		newNormalizeCommand(app),
		newResolveCommand(app),
		newCompareCommand(app),
		newHostCommand(app),
		newQueryCommand(app),
		newPunycodeCommand(app),
		newExplainCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

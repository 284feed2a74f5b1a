// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/urlnorm/urlnorm/internal/config"
	"github.com/urlnorm/urlnorm/internal/issue"
	"github.com/urlnorm/urlnorm/pkg/types"
)

type (
	// App wires CLI services and per-invocation state. Command handlers
	// receive an App and read the resolved configuration from it.
	App struct {
		Config config.Provider

		flags   globalFlags
		cfg     *config.Config
		cfgPath string
		log     *slog.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
	}

	globalFlags struct {
		verbose    bool
		configFile string
		format     string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	return &App{Config: deps.Config}
}

// init resolves configuration and applies global flag overrides. A broken
// config file is reported and replaced by defaults unless it was named
// explicitly with --config.
func (a *App) init(cmd *cobra.Command) error {
	opts := config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.flags.configFile)}
	cfg, path, err := a.Config.Resolve(cmd.Context(), opts)
	if err != nil {
		if a.flags.configFile != "" {
			return &ExitError{Code: types.ExitUsage, Err: err, Verbose: a.flags.verbose}
		}
		fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.flags.verbose))
		cfg, path = config.DefaultConfig(), ""
	}

	if a.flags.verbose {
		cfg.UI.Verbose = true
	}
	if a.flags.format != "" {
		cfg.Output.Format = types.OutputFormat(a.flags.format)
	}
	if err := cfg.Output.Format.Validate(); err != nil {
		return usageError(err)
	}

	a.cfg = cfg
	a.cfgPath = path
	a.log = newLogger(cmd.ErrOrStderr(), cfg.UI.Verbose)
	a.log.Debug("configuration resolved", "path", path, "format", cfg.Output.Format)
	return nil
}

// newLogger returns an slog logger backed by a charm log handler.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return slog.New(log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	}))
}

func (a *App) verbose() bool {
	return a.cfg != nil && a.cfg.UI.Verbose
}

// inputError reports a URL, host, query or label the user supplied that
// could not be processed. It exits with ExitUsage.
func (a *App) inputError(op, resource string, err error) error {
	ae := issue.NewErrorContext().
		WithOperation(op).
		WithResource(resource).
		WithIssue(issue.Classify(err)).
		Wrap(err).
		BuildError()
	return &ExitError{Code: types.ExitUsage, Err: ae, Verbose: a.verbose()}
}

func (a *App) watchError(file string, err error) error {
	ae := issue.NewErrorContext().
		WithOperation("watch URL list").
		WithResource(file).
		WithSuggestion("Check that the directory exists and that the watch patterns are valid globs").
		WithIssue(issue.WatchFailedId).
		Wrap(err).
		BuildError()
	return &ExitError{Code: types.ExitFailure, Err: ae, Verbose: a.verbose()}
}

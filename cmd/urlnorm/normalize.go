// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/urlnorm/urlnorm/internal/batch"
	"github.com/urlnorm/urlnorm/internal/config"
	"github.com/urlnorm/urlnorm/internal/watch"
	"github.com/urlnorm/urlnorm/pkg/types"
)

type (
	normalizeFlags struct {
		file   string
		watch  bool
		ascii  bool
		purell string
	}

	// normalizeOutput is the structured form of `urlnorm normalize`.
	normalizeOutput struct {
		Source  string            `json:"source" toml:"source"`
		Results []normalizeResult `json:"results" toml:"results"`
	}

	normalizeResult struct {
		Line   int    `json:"line" toml:"line"`
		Input  string `json:"input" toml:"input"`
		Output string `json:"output,omitempty" toml:"output,omitempty"`
		Error  string `json:"error,omitempty" toml:"error,omitempty"`
	}
)

func newNormalizeCommand(app *App) *cobra.Command {
	var flags normalizeFlags

	cmd := &cobra.Command{
		Use:   "normalize [url...]",
		Short: "Print the canonical form of URLs",
		Long: `Print the canonical form of each URL given as argument or listed in a file.

A list file holds one URL per line; blank lines and lines starting with '#'
are skipped. A file ending in .cue is read as a manifest:

  urls: ["http://example.com/", "https://bücher.example/"]
  host_form: "ascii"

With --watch the list is normalized again whenever it changes.`,
		Example: `  urlnorm normalize 'HTTP://Example.COM/a b'
  urlnorm normalize --ascii 'http://президент.рф/'
  urlnorm normalize --purell usually_safe http://example.com:80/a/
  urlnorm normalize --file urls.txt --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, app, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.file, "file", "", "read URLs from a text list or .cue manifest ('-' for stdin)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "normalize the list again when it changes (requires --file)")
	cmd.Flags().BoolVar(&flags.ascii, "ascii", false, "print hosts in ASCII (xn--) form")
	cmd.Flags().StringVar(&flags.purell, "purell", "", "extra purell pass: none, safe, usually_safe or unsafe (default from config)")

	return cmd
}

func runNormalize(cmd *cobra.Command, app *App, flags normalizeFlags, args []string) error {
	switch {
	case flags.file == "" && len(args) == 0:
		return usageError(errors.New("no URLs given: pass URLs as arguments or use --file"))
	case flags.file != "" && len(args) > 0:
		return usageError(errors.New("--file cannot be combined with URL arguments"))
	case flags.watch && (flags.file == "" || flags.file == "-"):
		return usageError(errors.New("--watch requires --file with a path"))
	}

	runner := batch.Runner{
		HostForm: app.cfg.Output.HostForm,
		Purell:   app.cfg.Normalize.Purell,
		Logger:   app.log,
	}
	if flags.ascii {
		runner.HostForm = config.HostFormASCII
	}
	if flags.purell != "" {
		mode := config.PurellMode(flags.purell)
		if err := mode.Validate(); err != nil {
			return usageError(err)
		}
		runner.Purell = mode
	}

	load := func() (*batch.List, error) {
		switch flags.file {
		case "":
			list := &batch.List{Source: "arguments"}
			for i, arg := range args {
				list.Entries = append(list.Entries, batch.Entry{Line: i + 1, Input: arg})
			}
			return list, nil
		case "-":
			return batch.Read(cmd.InOrStdin(), "stdin")
		default:
			return batch.ReadFile(flags.file)
		}
	}

	failed, err := normalizeOnce(cmd.Context(), cmd.OutOrStdout(), app, runner, load)
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: err, Verbose: app.verbose()}
	}
	if flags.watch {
		return watchList(cmd, app, flags.file, runner, load)
	}
	if failed > 0 {
		return &ExitError{Code: types.ExitFailure, Err: fmt.Errorf("%d of the URLs could not be normalized", failed)}
	}
	return nil
}

// normalizeOnce loads the list, normalizes it and prints the results. It
// returns the number of entries that failed.
func normalizeOnce(ctx context.Context, w io.Writer, app *App, runner batch.Runner, load func() (*batch.List, error)) (int, error) {
	list, err := load()
	if err != nil {
		return 0, err
	}
	results, err := runner.Run(ctx, list)
	if err != nil {
		return 0, err
	}

	out := normalizeOutput{Source: list.Source, Results: make([]normalizeResult, 0, len(results))}
	for _, r := range results {
		res := normalizeResult{Line: r.Line, Input: r.Input, Output: r.Output}
		if r.Err != nil {
			res.Error = r.Err.Error()
		}
		out.Results = append(out.Results, res)
	}

	err = app.render(w, out, func(w io.Writer) error {
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			if _, err := fmt.Fprintln(w, r.Output); err != nil {
				return err
			}
		}
		return nil
	})
	return batch.Failed(results), err
}

func watchList(cmd *cobra.Command, app *App, file string, runner batch.Runner, load func() (*batch.List, error)) error {
	debounce, err := app.cfg.Watch.Debounce.Duration()
	if err != nil {
		return usageError(err)
	}

	w, err := watch.New(watch.Config{
		Files:    []string{file},
		Patterns: app.cfg.Watch.Patterns,
		BaseDir:  filepath.Dir(file),
		Debounce: debounce,
		Logger:   app.log,
		OnChange: func(ctx context.Context, changed []string) error {
			app.log.Info("list changed, normalizing again", "paths", changed)
			_, err := normalizeOnce(ctx, cmd.OutOrStdout(), app, runner, load)
			return err
		},
	})
	if err != nil {
		return app.watchError(file, err)
	}

	app.log.Info("watching for changes", "file", file)
	if err := w.Run(cmd.Context()); err != nil {
		return app.watchError(file, err)
	}
	return nil
}

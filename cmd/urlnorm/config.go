// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/urlnorm/urlnorm/internal/config"
	"github.com/urlnorm/urlnorm/pkg/types"
)

// configKeys lists the keys accepted by `urlnorm config set`.
var configKeys = []string{
	"output.format",
	"output.host_form",
	"normalize.purell",
	"ui.color_scheme",
	"ui.verbose",
	"watch.debounce",
	"watch.patterns",
}

// newConfigCommand creates the `urlnorm config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage urlnorm configuration",
		Long: `Manage urlnorm configuration.

Configuration is stored in:
  - Linux: ~/.config/urlnorm/config.cue
  - macOS: ~/Library/Application Support/urlnorm/config.cue
  - Windows: %APPDATA%\urlnorm\config.cue

Every key can be overridden with a URLNORM_ environment variable, for
example URLNORM_OUTPUT_FORMAT=json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.OutOrStdout(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a configuration value",
		Long:      "Set a configuration value. Valid keys: " + strings.Join(configKeys, ", ") + ".",
		Args:      usageArgs(cobra.ExactArgs(2)),
		ValidArgs: configKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd, app, args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the resolved configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(app.cfg))
			return err
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, app *App) error {
	cfg := app.cfg
	return app.render(w, cfg, func(w io.Writer) error {
		source := app.cfgPath
		if source == "" {
			source = SubtitleStyle.Render("(using defaults)")
		}
		fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
		fmt.Fprintln(w)
		keyValues(w, [2]string{"config file", source})
		fmt.Fprintln(w)

		patterns := strings.Join(cfg.Watch.Patterns, ", ")
		if patterns == "" {
			patterns = SubtitleStyle.Render("(none)")
		}
		keyValues(w,
			[2]string{"output.format", SuccessStyle.Render(cfg.Output.Format.String())},
			[2]string{"output.host_form", SuccessStyle.Render(cfg.Output.HostForm.String())},
			[2]string{"normalize.purell", SuccessStyle.Render(cfg.Normalize.Purell.String())},
			[2]string{"ui.color_scheme", SuccessStyle.Render(cfg.UI.ColorScheme.String())},
			[2]string{"ui.verbose", SuccessStyle.Render(strconv.FormatBool(cfg.UI.Verbose))},
			[2]string{"watch.debounce", SuccessStyle.Render(string(cfg.Watch.Debounce))},
			[2]string{"watch.patterns", patterns},
		)
		return nil
	})
}

func initConfig(w io.Writer) error {
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	created, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !created {
		fmt.Fprintf(w, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}

	fmt.Fprintf(w, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func setConfigValue(cmd *cobra.Command, app *App, key, value string) error {
	cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{})
	if err != nil {
		return err
	}

	switch key {
	case "output.format":
		cfg.Output.Format = types.OutputFormat(value)
	case "output.host_form":
		cfg.Output.HostForm = config.HostForm(value)
	case "normalize.purell":
		cfg.Normalize.Purell = config.PurellMode(value)
	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)
	case "ui.verbose":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return usageError(fmt.Errorf("invalid ui.verbose %q: %w", value, err))
		}
		cfg.UI.Verbose = v
	case "watch.debounce":
		cfg.Watch.Debounce = config.Duration(value)
	case "watch.patterns":
		cfg.Watch.Patterns = splitList(value)
	default:
		return usageError(fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(configKeys, ", ")))
	}

	if err := config.Save(cfg); err != nil {
		if errors.Is(err, config.ErrInvalidConfig) {
			return usageError(err)
		}
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(value string) []string {
	items := []string{}
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

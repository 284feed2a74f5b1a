// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/urlnorm/urlnorm/pkg/types"
)

const (
	// HostFormUnicode prints hosts in their Unicode form.
	HostFormUnicode HostForm = "unicode"
	// HostFormASCII prints hosts in their ACE (xn--) form.
	HostFormASCII HostForm = "ascii"

	// PurellNone disables the extra purell normalization pass.
	PurellNone PurellMode = "none"
	// PurellSafe applies purell's safe flag set.
	PurellSafe PurellMode = "safe"
	// PurellUsuallySafe applies purell's usually-safe greedy flag set.
	PurellUsuallySafe PurellMode = "usually_safe"
	// PurellUnsafe applies purell's unsafe greedy flag set.
	PurellUnsafe PurellMode = "unsafe"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultDebounce is the default watch debounce window.
	DefaultDebounce Duration = "500ms"
)

var (
	// ErrInvalidHostForm is returned when a HostForm value is not recognized.
	ErrInvalidHostForm = errors.New("invalid host form")
	// ErrInvalidPurellMode is returned when a PurellMode value is not recognized.
	ErrInvalidPurellMode = errors.New("invalid purell mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidDuration is returned when a Duration does not parse or is negative.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrInvalidWatchPattern is returned when a watch glob is malformed.
	ErrInvalidWatchPattern = errors.New("invalid watch pattern")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// HostForm selects the host rendering used by command output.
	HostForm string

	// PurellMode selects an optional purell normalization pass applied after
	// urlnorm's own pipeline.
	PurellMode string

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// Duration is a time.ParseDuration string such as "500ms".
	Duration string

	// InvalidValueError is returned when an enumerated config value is not
	// recognized. It wraps the sentinel for the offending key.
	InvalidValueError struct {
		Key   string
		Value string
		Valid []string
		Err   error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sections.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Output configures how results are printed.
		Output OutputConfig `json:"output" toml:"output" mapstructure:"output"`
		// Normalize configures extra normalization passes.
		Normalize NormalizeConfig `json:"normalize" toml:"normalize" mapstructure:"normalize"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" toml:"ui" mapstructure:"ui"`
		// Watch configures `normalize --watch`.
		Watch WatchConfig `json:"watch" toml:"watch" mapstructure:"watch"`
	}

	// OutputConfig configures result rendering.
	OutputConfig struct {
		Format   types.OutputFormat `json:"format" toml:"format" mapstructure:"format"`
		HostForm HostForm           `json:"host_form" toml:"host_form" mapstructure:"host_form"`
	}

	// NormalizeConfig configures the purell post-pass.
	NormalizeConfig struct {
		Purell PurellMode `json:"purell" toml:"purell" mapstructure:"purell"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" toml:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" toml:"verbose" mapstructure:"verbose"`
	}

	// WatchConfig configures the file watcher.
	WatchConfig struct {
		// Debounce is how long the watcher waits after the last event.
		Debounce Duration `json:"debounce" toml:"debounce" mapstructure:"debounce"`
		// Patterns are doublestar globs of extra files to watch.
		Patterns []string `json:"patterns" toml:"patterns" mapstructure:"patterns"`
	}
)

// Error implements the error interface for InvalidValueError.
func (e *InvalidValueError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("invalid %s %q", e.Key, e.Value)
	}
	return fmt.Sprintf("invalid %s %q (valid: %s)", e.Key, e.Value, strings.Join(e.Valid, ", "))
}

// Unwrap returns the key's sentinel for errors.Is() compatibility.
func (e *InvalidValueError) Unwrap() error { return e.Err }

// String returns the string representation of the HostForm.
func (h HostForm) String() string { return string(h) }

// Validate returns an error if h is not a known host form.
func (h HostForm) Validate() error {
	switch h {
	case HostFormUnicode, HostFormASCII:
		return nil
	default:
		return &InvalidValueError{Key: "output.host_form", Value: string(h), Valid: []string{"unicode", "ascii"}, Err: ErrInvalidHostForm}
	}
}

// String returns the string representation of the PurellMode.
func (m PurellMode) String() string { return string(m) }

// Validate returns an error if m is not a known purell mode.
func (m PurellMode) Validate() error {
	switch m {
	case PurellNone, PurellSafe, PurellUsuallySafe, PurellUnsafe:
		return nil
	default:
		return &InvalidValueError{
			Key:   "normalize.purell",
			Value: string(m),
			Valid: []string{"none", "safe", "usually_safe", "unsafe"},
			Err:   ErrInvalidPurellMode,
		}
	}
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Validate returns an error if cs is not a known color scheme.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidValueError{Key: "ui.color_scheme", Value: string(cs), Valid: []string{"auto", "dark", "light"}, Err: ErrInvalidColorScheme}
	}
}

// Duration parses d. The empty Duration is zero.
func (d Duration) Duration() (time.Duration, error) {
	if d == "" {
		return 0, nil
	}
	v, err := time.ParseDuration(string(d))
	if err != nil || v < 0 {
		return 0, &InvalidValueError{Key: "watch.debounce", Value: string(d), Err: ErrInvalidDuration}
	}
	return v, nil
}

// Validate returns an error if d does not parse as a non-negative duration.
func (d Duration) Validate() error {
	_, err := d.Duration()
	return err
}

// Validate checks the watch debounce and every glob pattern.
func (c WatchConfig) Validate() error {
	var errs []error
	if err := c.Debounce.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, p := range c.Patterns {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, &InvalidValueError{Key: "watch.patterns", Value: p, Err: ErrInvalidWatchPattern})
		}
	}
	return errors.Join(errs...)
}

// Validate returns an InvalidConfigError listing every invalid field.
func (c Config) Validate() error {
	var errs []error
	if err := c.Output.Format.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Output.HostForm.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Normalize.Purell.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Watch.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig followed by the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:   types.OutputText,
			HostForm: HostFormUnicode,
		},
		Normalize: NormalizeConfig{
			Purell: PurellNone,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
			Patterns: []string{},
		},
	}
}

// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/urlnorm/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/urlnorm/config.cue on macOS, %APPDATA%\urlnorm\config.cue
// on Windows). Values can be overridden with URLNORM_* environment variables, where the
// key path separator "." becomes "_" (URLNORM_OUTPUT_FORMAT=json).
//
// Configuration files are validated against an embedded CUE schema (config_schema.cue)
// before they are merged into Viper.
package config

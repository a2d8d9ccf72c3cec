// Package config loads, normalizes, and validates aircheck's TOML
// configuration.
//
// Configuration flows through three stages: Default() seeds every field,
// the optional config file overrides it, then normalize() expands paths and
// applies environment fallbacks before Validate() rejects unusable values.
// Components receive the resulting *Config explicitly; there is no process
// global.
package config

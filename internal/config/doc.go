// Package config loads, normalizes, and validates ccget's TOML configuration.
//
// Configuration is resolved from an explicit --config path, then
// ~/.config/ccget/config.toml, then a project-local ccget.toml. Missing files
// fall back to repository defaults so the CLI works without any setup. All
// path fields are tilde-expanded and absolute after Load returns.
package config

// Package config loads and merges critique configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (CRITIQUE_PROVIDER, CRITIQUE_MODEL, ...)
//  3. Config file ($XDG_CONFIG_HOME/critique/config.json)
//  4. Built-in defaults
//
// Every source addresses fields by the same key names, see [SetField].
package config

// Package config loads, normalizes, and validates murmur's TOML
// configuration. Components receive an immutable *Config from process entry
// and never consult the environment themselves; environment overrides are
// applied once during Load.
package config

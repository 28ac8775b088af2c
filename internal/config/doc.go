// Package config loads, normalizes, and validates prproj configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the PRPROJ_LOG_LEVEL environment fallback. The
// Config type gathers every knob the CLI needs: how logs are written, how the
// project reader resolves references, and where the scan catalog lives.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical enum values, and clear validation errors.
package config

// Package config loads, normalizes, and validates webify configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// WEBIFY_OUTPUT_ROOT. Command-line positionals override whatever is loaded
// here.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config

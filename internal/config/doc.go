// Package config loads, normalizes, and validates resolver configuration.
//
// It supplies repository defaults, reads TOML files, and honours environment
// fallbacks such as CATALOG_API_KEY so the engine can run unconfigured in
// development. The Config type centralizes every knob the resolver exposes:
// catalog credentials, classifier credentials, tier thresholds, and logging.
//
// Always obtain settings through this package so downstream code receives
// canonical values and clear validation errors.
package config

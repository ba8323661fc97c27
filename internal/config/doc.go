// Package config provides configuration management for grf.
//
// Settings are layered with viper:
//
//  1. Built-in defaults (DefaultSettings)
//  2. An optional config file (YAML, JSON or TOML)
//  3. Environment variables prefixed with GRF_
//
// Command line flags are applied on top by the caller.
//
// # Loading
//
//	settings, err := config.Load("grf.yaml")
//	if err != nil {
//	    // The file exists but is malformed
//	}
//	if err := settings.Validate(); err != nil {
//	    // e.g. chunk_size <= 0
//	}
//
// A config file looks like:
//
//	output_dir: ./releases
//	request_timeout: 10s
//	chunk_size: 4194304
//	listing_format: json
//
// The same keys can be set from the environment, e.g.
// GRF_API_BASE_URL=http://localhost:8080 for a local API mirror.
package config

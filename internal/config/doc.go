// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and NUMEROLOGY_-prefixed environment
// variables. It provides type-safe access to the settings needed by the
// server, the report store, the interpretation client and the batch worker.
package config

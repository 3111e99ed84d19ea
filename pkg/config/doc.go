// Package config loads application configuration from an optional YAML
// file overlaid with TODOS_-prefixed environment variables, and validates
// it before the server starts. The JWT signing key and the bcrypt work
// factor are configuration, never code.
package config

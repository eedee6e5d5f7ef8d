// Package config loads service configuration.
//
// Resolution order: built-in defaults, then an optional YAML file, then
// environment variables (via envconfig). Later sources win.
package config

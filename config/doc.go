// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Optional .env and .env.local files are loaded first; TUBE_* environment
// variables override values from the file. The package supports multiple
// named networks and allows network selection by name.
package config

// Package config manages user-level settings stored at ~/.addonhub/config.yaml.
// It provides defaults for the source label, download base URL, and output
// path used when generating the add-on index.
package config

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/addonhub-labs/addonhub/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys understood by the tool. Each can also be supplied via the
// environment (e.g. ADDONHUB_SOURCE) or overridden by a CLI flag.
const (
	KeySource  = "source"
	KeyBaseURL = "base_url"
	KeyOutput  = "output"
)

// Built-in defaults used when neither config file, environment, nor flag
// provides a value.
const (
	DefaultSource  = "internal"
	DefaultBaseURL = "http://localhost:8000/"
	DefaultOutput  = "index.json"
)

// Dir returns the path to the AddonHub config directory (~/.addonhub/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.addonhub/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeySource, DefaultSource)
	viper.SetDefault(KeyBaseURL, DefaultBaseURL)
	viper.SetDefault(KeyOutput, DefaultOutput)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

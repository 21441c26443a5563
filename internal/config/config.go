// Package config handles client and server configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "tareas"

	// ConfigFile is the client configuration filename.
	ConfigFile = "config.yaml"

	// DefaultAPIURL is used when neither the file, the env nor a flag sets one.
	DefaultAPIURL = "http://localhost:3000"

	// APIURLEnv overrides the API base URL from the config file.
	APIURLEnv = "TAREAS_API_URL"
)

// Config holds client configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the tareas server.
	APIURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// NoColor disables ANSI styling in rendered output.
	NoColor bool
}

// fileConfig is the on-disk shape of config.yaml.
type fileConfig struct {
	APIURL string `yaml:"api_url"`
}

// New creates a Config for the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tareas or $HOME/.config/tareas.
// The API URL is resolved from config.yaml, then TAREAS_API_URL.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, APIURL: DefaultAPIURL}

	fc, err := readFile(cfg.FilePath())
	if err != nil {
		return nil, err
	}
	if fc.APIURL != "" {
		cfg.APIURL = fc.APIURL
	}
	if env := strings.TrimSpace(os.Getenv(APIURLEnv)); env != "" {
		cfg.APIURL = env
	}
	_, cfg.NoColor = os.LookupEnv("NO_COLOR")

	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// Save writes the API URL to config.yaml.
func (c *Config) Save() error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := yaml.Marshal(fileConfig{APIURL: c.APIURL})
	if err != nil {
		return err
	}
	return os.WriteFile(c.FilePath(), data, 0600)
}

// readFile loads config.yaml. A missing file yields an empty config.
func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fc, nil
		}
		return fc, err
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return fc, nil
}

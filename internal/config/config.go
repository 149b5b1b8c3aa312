package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// Backend contains the connection settings for the generation service.
type Backend struct {
	URL            string `toml:"url"`
	RequestTimeout int    `toml:"request_timeout"` // seconds, per stage request
}

// Config is the full settings file. Everything has a working default; the
// file itself is optional.
type Config struct {
	Backend Backend `toml:"backend"`
}

const (
	defaultBackendURL     = "http://localhost:5000"
	defaultRequestTimeout = 300
)

func Default() *Config {
	return &Config{
		Backend: Backend{
			URL:            defaultBackendURL,
			RequestTimeout: defaultRequestTimeout,
		},
	}
}

// DefaultPath returns the canonical settings location under the user config
// directory.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "pitchreel", "config.toml"), nil
}

// Load reads the settings file at path, layering it over the defaults. A
// missing file is not an error.
func Load(fsys afero.Fs, path string) (*Config, error) {
	cfg := Default()
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Backend.URL = strings.TrimRight(strings.TrimSpace(c.Backend.URL), "/")
}

func (c *Config) validate() error {
	if c.Backend.URL == "" {
		return errors.New("backend.url must not be empty")
	}
	if c.Backend.RequestTimeout <= 0 {
		return fmt.Errorf("backend.request_timeout must be positive, got %d", c.Backend.RequestTimeout)
	}
	return nil
}

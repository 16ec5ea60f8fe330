// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all contacts configuration.
type Config struct {
	Store   Store   `yaml:"store"`
	Display Display `yaml:"display"`
}

// Store holds backing file settings.
type Store struct {
	Path string `yaml:"path"`
}

// Display holds terminal presentation settings.
type Display struct {
	NoTUI         bool `yaml:"no_tui"`         // Never start the Bubble Tea browser
	ConfirmDelete bool `yaml:"confirm_delete"` // Ask y/n before deleting in the browser
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Store: Store{
			Path: "contacts.json",
		},
		Display: Display{
			ConfirmDelete: true,
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("config: store.path cannot be empty")
	}
	if strings.HasSuffix(c.Store.Path, "/") || strings.HasSuffix(c.Store.Path, string(os.PathSeparator)) {
		return fmt.Errorf("config: store.path must name a file, got %q", c.Store.Path)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CONTACTS_FILE, CONTACTS_NO_TUI.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CONTACTS_FILE"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("CONTACTS_NO_TUI"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid CONTACTS_NO_TUI %q: %w", v, err)
		}
		c.Display.NoTUI = b
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Store   *rawStore   `yaml:"store"`
	Display *rawDisplay `yaml:"display"`
}

type rawStore struct {
	Path *string `yaml:"path"`
}

type rawDisplay struct {
	NoTUI         *bool `yaml:"no_tui"`
	ConfirmDelete *bool `yaml:"confirm_delete"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Store != nil {
		if layer.Store.Path != nil {
			c.Store.Path = *layer.Store.Path
		}
	}
	if layer.Display != nil {
		if layer.Display.NoTUI != nil {
			c.Display.NoTUI = *layer.Display.NoTUI
		}
		if layer.Display.ConfirmDelete != nil {
			c.Display.ConfirmDelete = *layer.Display.ConfirmDelete
		}
	}
}

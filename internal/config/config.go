package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CIFVIEW_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: CIFVIEW_PORT -> port, etc.
	if err := k.Load(env.Provider("CIFVIEW_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CIFVIEW_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validStyles is the set of recognized representation styles.
var validStyles = map[Style]bool{
	StyleCartoon: true,
	StyleStick:   true,
	StyleSphere:  true,
	StyleLine:    true,
}

// validColorSchemes is the set of recognized color schemes.
var validColorSchemes = map[ColorScheme]bool{
	ColorSpectrum: true,
	ColorChain:    true,
	ColorElement:  true,
	ColorResidue:  true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}

	if !validStyles[c.Viewer.Style] {
		return fmt.Errorf("invalid viewer style %q: must be one of cartoon, stick, sphere, line", c.Viewer.Style)
	}

	if !validColorSchemes[c.Viewer.Color] {
		return fmt.Errorf("invalid color scheme %q: must be one of spectrum, chain, element, residue", c.Viewer.Color)
	}

	if c.Viewer.Opacity < 0 || c.Viewer.Opacity > 1 {
		return fmt.Errorf("viewer opacity must be between 0 and 1, got %g", c.Viewer.Opacity)
	}

	if !strings.HasPrefix(c.Viewer.Background, "#") {
		return fmt.Errorf("viewer background must be a hex color like #ffffff, got %q", c.Viewer.Background)
	}

	return nil
}

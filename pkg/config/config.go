package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for in the working directory and
// its parents.
const FileName = ".arbor.yaml"

// Config represents an .arbor.yaml configuration file. Every field has a
// matching command-line flag; flags win when both are set.
type Config struct {
	// Data is the path to a JSON or YAML forest file, relative to the
	// config file's directory unless absolute.
	Data string `yaml:"data,omitempty"`

	// Sample names a built-in forest to show instead of a data file.
	Sample string `yaml:"sample,omitempty"`

	// Select is the ID of the item selected on startup.
	Select string `yaml:"select,omitempty"`

	// ExpandAll opens every branch on startup.
	ExpandAll bool `yaml:"expand_all,omitempty"`

	// Theme picks the color palette (default, mono).
	Theme string `yaml:"theme,omitempty"`

	// LogFile routes debug logging to a file; empty disables logging.
	LogFile string `yaml:"log_file,omitempty"`

	// Watch reloads the tree when the data file changes (default: true).
	Watch *bool `yaml:"watch,omitempty"`

	// Export sets defaults for export commands.
	Export ExportConfig `yaml:"export,omitempty"`
}

// ExportConfig controls export output options.
type ExportConfig struct {
	// Dir is the output directory for exports (default: current dir).
	Dir string `yaml:"dir,omitempty"`

	// Format is the default export format (markdown, html, svg, png,
	// outline).
	Format string `yaml:"format,omitempty"`
}

var validThemes = map[string]bool{
	"":        true,
	"default": true,
	"mono":    true,
}

var validFormats = map[string]bool{
	"":         true,
	"markdown": true,
	"html":     true,
	"svg":      true,
	"png":      true,
	"outline":  true,
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Data != "" && c.Sample != "" {
		return fmt.Errorf("data and sample are mutually exclusive")
	}
	if !validThemes[c.Theme] {
		return fmt.Errorf("unknown theme %q (want default or mono)", c.Theme)
	}
	if !validFormats[c.Export.Format] {
		return fmt.Errorf("unknown export format %q", c.Export.Format)
	}
	return nil
}

// GetTheme returns the effective theme name.
func (c *Config) GetTheme() string {
	if c.Theme == "" {
		return "default"
	}
	return c.Theme
}

// GetExportDir returns the effective export directory.
func (c *Config) GetExportDir() string {
	if c.Export.Dir == "" {
		return "."
	}
	return c.Export.Dir
}

// GetExportFormat returns the effective export format.
func (c *Config) GetExportFormat() string {
	if c.Export.Format == "" {
		return "markdown"
	}
	return c.Export.Format
}

// IsWatchEnabled reports whether live reload is on.
func (c *Config) IsWatchEnabled() bool {
	if c.Watch == nil {
		return true
	}
	return *c.Watch
}

// ResolvedData returns the data path resolved against the directory the
// config file was loaded from.
func (c *Config) ResolvedData(configPath string) string {
	if c.Data == "" || filepath.IsAbs(c.Data) {
		return c.Data
	}
	return filepath.Join(filepath.Dir(configPath), expandHome(c.Data))
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Find searches for .arbor.yaml starting from dir and walking up,
// stopping at the filesystem root or the user's home directory.
func Find(dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}

	home, _ := os.UserHomeDir()

	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		if home != "" && dir == home {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
		}
	}
	return path
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	return Config{
		Theme: "default",
	}
}

// ExampleConfig returns a fully populated example for documentation.
func ExampleConfig() Config {
	watch := true
	return Config{
		Data:      "tree.json",
		Select:    "root",
		ExpandAll: false,
		Theme:     "default",
		LogFile:   "arbor.log",
		Watch:     &watch,
		Export: ExportConfig{
			Dir:    "exports",
			Format: "markdown",
		},
	}
}

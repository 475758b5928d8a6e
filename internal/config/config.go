// Package config loads and validates YAML configuration for diagram
// rendering and document export.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deskdocs/flowsnap/internal/fileutil"
	"github.com/deskdocs/flowsnap/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidLabel    = errors.New("invalid diagram label")
	ErrInvalidTimeout  = errors.New("invalid timeout duration")
	ErrInvalidWorkers  = errors.New("invalid worker count")
	ErrInvalidViewport = errors.New("invalid viewport dimensions")
)

// Field limits. Labels become file names, so they get the strictest checks.
const (
	MaxLabelLength = 100  // diagram label used in output file names
	MaxPathLength  = 4096 // general filesystem path limit
	MaxThemeLength = 50   // mermaid theme name
	MaxWorkers     = 8    // upper bound for concurrent render jobs
)

// Config holds all configuration for rendering and export.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Engine  EngineConfig  `yaml:"engine"`
	Browser BrowserConfig `yaml:"browser"`
	Render  RenderConfig  `yaml:"render"`
	Export  ExportConfig  `yaml:"export"`
	Assets  AssetsConfig  `yaml:"assets"`
	Theme   ThemeConfig   `yaml:"theme"`
}

// InputConfig defines the default source document.
type InputConfig struct {
	Document string `yaml:"document"` // Default document path (empty = must specify)
}

// OutputConfig defines output destinations.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Directory for per-diagram images (empty = current directory)
	PDF string `yaml:"pdf"` // Path for the exported PDF (empty = derive from input)
}

// EngineConfig locates the rendering engine JavaScript bundle.
type EngineConfig struct {
	Path string `yaml:"path"` // Path to mermaid.min.js (empty = node_modules default)
}

// BrowserConfig defines the headless browser used for rendering.
type BrowserConfig struct {
	Bin       string `yaml:"bin"`       // Chrome/Chromium binary path (empty = auto-detect)
	NoSandbox bool   `yaml:"noSandbox"` // Disable the browser sandbox (required in most containers)
}

// RenderConfig defines per-diagram image rendering options.
type RenderConfig struct {
	Labels   []string       `yaml:"labels"`   // Positional labels for extracted diagrams
	Timeout  string         `yaml:"timeout"`  // Per-diagram ready timeout, e.g. "30s"
	Workers  int            `yaml:"workers"`  // Concurrent render jobs (0 = sequential)
	Viewport ViewportConfig `yaml:"viewport"` // Page viewport (0 = built-in default)
}

// ViewportConfig defines the browser page dimensions.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ExportConfig defines document-to-PDF export options.
type ExportConfig struct {
	Timeout string `yaml:"timeout"` // Whole-document ready timeout, e.g. "60s"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ThemeConfig overrides parts of the diagram theme.
type ThemeConfig struct {
	Name     string `yaml:"name"`     // mermaid theme, e.g. "base", "dark" (empty = built-in)
	FontSize string `yaml:"fontSize"` // e.g. "14px" (empty = built-in)
}

// Validate checks field values. Called automatically by LoadConfig, but
// available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.document", c.Input.Document, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.pdf", c.Output.PDF, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("engine.path", c.Engine.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("browser.bin", c.Browser.Bin, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("theme.name", c.Theme.Name, MaxThemeLength); err != nil {
		return err
	}
	if err := validateFieldLength("theme.fontSize", c.Theme.FontSize, MaxThemeLength); err != nil {
		return err
	}

	for i, label := range c.Render.Labels {
		if err := ValidateLabel(label); err != nil {
			return fmt.Errorf("render.labels[%d]: %w", i, err)
		}
	}

	if err := validateTimeout("render.timeout", c.Render.Timeout); err != nil {
		return err
	}
	if err := validateTimeout("export.timeout", c.Export.Timeout); err != nil {
		return err
	}

	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers must be between 0 and %d, got %d",
			ErrInvalidWorkers, MaxWorkers, c.Render.Workers)
	}

	vp := c.Render.Viewport
	if vp.Width < 0 || vp.Height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, vp.Width, vp.Height)
	}
	if (vp.Width == 0) != (vp.Height == 0) {
		return fmt.Errorf("%w: width and height must be set together", ErrInvalidViewport)
	}

	return nil
}

// ValidateLabel checks that a diagram label is safe for use in a file name.
// Labels end up in "NN_label.png", so path separators and control characters
// are rejected.
func ValidateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidLabel)
	}
	if len(label) > MaxLabelLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidLabel, len(label), MaxLabelLength)
	}
	if strings.ContainsAny(label, "/\\\x00") {
		return fmt.Errorf("%w: %q contains path separator or null byte", ErrInvalidLabel, label)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateTimeout checks that a non-empty timeout parses as a positive duration.
func validateTimeout(fieldName, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidTimeout, fieldName, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidTimeout, fieldName, value)
	}
	return nil
}

// DefaultConfig returns a neutral configuration. All values are empty or
// zero, which means "use the built-in default" throughout.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	// A bare name is resolved against the standard locations; anything
	// with a separator is taken as a literal path.
	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/flowsnap/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "flowsnap", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

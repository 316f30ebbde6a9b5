package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-docx2md/internal/fileutil"
	"github.com/alnah/go-docx2md/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Field limits.
const (
	MaxPathLength        = 4096
	MaxImageDirLength    = 255
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
)

// Accepted enum values. Page values are checked again by the converter.
var (
	LogLevels   = []any{"trace", "debug", "info", "warn", "error", "fatal"}
	LogFormats  = []any{"json", "console", "pretty"}
	PageSizes   = []any{"letter", "a4", "legal"}
	Orientation = []any{"portrait", "landscape"}
)

// Config holds all configuration for a conversion run.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Images  ImagesConfig  `yaml:"images"`
	Logging LoggingConfig `yaml:"logging"`
	Render  RenderConfig  `yaml:"render"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = next to the source)
	ImageDir   string `yaml:"imageDir"`   // Image directory relative to the markdown (empty = "images")
	HTML       bool   `yaml:"html"`       // Write an HTML preview
	PDF        bool   `yaml:"pdf"`        // Write a PDF of the preview
	CSS        string `yaml:"css"`        // Stylesheet path for the preview
}

// ImagesConfig defines image extraction options.
type ImagesConfig struct {
	Extract *bool `yaml:"extract"` // nil = true
}

// LoggingConfig defines structured logging options.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error, fatal (default: warn)
	Format string `yaml:"format"` // json, console, pretty (default: console)
}

// RenderConfig defines preview and PDF rendering options.
type RenderConfig struct {
	Timeout     string  `yaml:"timeout"`     // Go duration, e.g. "45s"
	PageSize    string  `yaml:"pageSize"`    // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// ExtractImages reports whether images should be written to disk.
func (c *Config) ExtractImages() bool {
	return c.Images.Extract == nil || *c.Images.Extract
}

// TimeoutDuration parses Render.Timeout. Zero means unset.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Render.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil {
		return 0, fmt.Errorf("render.timeout: %w", err)
	}
	return d, nil
}

// Validate checks enum values, lengths and ranges.
// Called automatically by LoadConfig, but available for callers who build
// a Config manually or after merging env and flag overrides.
func (c *Config) Validate() error {
	err := validation.Errors{
		"input": validation.ValidateStruct(&c.Input,
			validation.Field(&c.Input.DefaultDir, validation.Length(0, MaxPathLength)),
		),
		"output": validation.ValidateStruct(&c.Output,
			validation.Field(&c.Output.DefaultDir, validation.Length(0, MaxPathLength)),
			validation.Field(&c.Output.ImageDir, validation.Length(0, MaxImageDirLength), validation.By(relativeDir)),
			validation.Field(&c.Output.CSS, validation.Length(0, MaxPathLength)),
		),
		"logging": validation.ValidateStruct(&c.Logging,
			validation.Field(&c.Logging.Level, validation.In(LogLevels...)),
			validation.Field(&c.Logging.Format, validation.In(LogFormats...)),
		),
		"render": validation.ValidateStruct(&c.Render,
			validation.Field(&c.Render.Timeout, validation.By(positiveDuration)),
			validation.Field(&c.Render.PageSize, validation.Length(0, MaxPageSizeLength), validation.In(PageSizes...)),
			validation.Field(&c.Render.Orientation, validation.Length(0, MaxOrientationLength), validation.In(Orientation...)),
			validation.Field(&c.Render.Margin, validation.Min(0.25), validation.Max(3.0)),
		),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return nil
}

func relativeDir(value any) error {
	dir, _ := value.(string)
	if dir == "" {
		return nil
	}
	clean := filepath.ToSlash(filepath.Clean(dir))
	if filepath.IsAbs(dir) || strings.HasPrefix(clean, "/") || clean == ".." || strings.HasPrefix(clean, "../") {
		return validation.NewError("config.output.image_dir_relative", "must be a relative path below the output directory")
	}
	return nil
}

func positiveDuration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return validation.NewError("config.render.timeout_invalid", "must be a positive duration such as 30s")
	}
	return nil
}

// DefaultConfig returns a configuration with images extracted and no
// optional outputs.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "warn", Format: "console"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath looks like a path, it's read directly. Otherwise it's
// searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

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

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-docx2md", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name: current directory
// first, then the user config directory.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-docx2md/internal/config"
)

const envPrefix = "DOCX2MD_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // DOCX2MD_CONFIG: config file name or path
	Timeout    time.Duration // DOCX2MD_TIMEOUT: PDF rendering timeout

	// Tier 2 - I/O
	InputDir  string // DOCX2MD_INPUT_DIR: default input directory
	OutputDir string // DOCX2MD_OUTPUT_DIR: default output directory
	ImageDir  string // DOCX2MD_IMAGE_DIR: image directory below each document

	// Tier 3 - Extended
	LogLevel  string // DOCX2MD_LOG_LEVEL
	LogFormat string // DOCX2MD_LOG_FORMAT
	PageSize  string // DOCX2MD_PAGE_SIZE: a4, letter, legal
	Workers   int    // DOCX2MD_WORKERS: parallel workers
}

// knownEnvVars lists valid DOCX2MD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCX2MD_CONFIG":     true,
	"DOCX2MD_TIMEOUT":    true,
	"DOCX2MD_INPUT_DIR":  true,
	"DOCX2MD_OUTPUT_DIR": true,
	"DOCX2MD_IMAGE_DIR":  true,
	"DOCX2MD_LOG_LEVEL":  true,
	"DOCX2MD_LOG_FORMAT": true,
	"DOCX2MD_PAGE_SIZE":  true,
	"DOCX2MD_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("DOCX2MD_CONFIG"),
		InputDir:   os.Getenv("DOCX2MD_INPUT_DIR"),
		OutputDir:  os.Getenv("DOCX2MD_OUTPUT_DIR"),
		ImageDir:   os.Getenv("DOCX2MD_IMAGE_DIR"),
		LogLevel:   os.Getenv("DOCX2MD_LOG_LEVEL"),
		LogFormat:  os.Getenv("DOCX2MD_LOG_FORMAT"),
		PageSize:   os.Getenv("DOCX2MD_PAGE_SIZE"),
	}

	if timeout := os.Getenv("DOCX2MD_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("DOCX2MD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for unrecognized DOCX2MD_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overwrites config file values with the variables that are
// set. Flags are applied afterwards by mergeFlags, so the resulting order
// is: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.ImageDir != "" {
		cfg.Output.ImageDir = env.ImageDir
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Logging.Format = env.LogFormat
	}
	if env.PageSize != "" {
		cfg.Render.PageSize = env.PageSize
	}
	if env.Timeout > 0 {
		cfg.Render.Timeout = env.Timeout.String()
	}
}

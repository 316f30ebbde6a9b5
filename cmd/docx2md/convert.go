package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	docx2md "github.com/alnah/go-docx2md"
	"github.com/alnah/go-docx2md/internal/config"
	"github.com/alnah/go-docx2md/internal/hints"
	"github.com/alnah/go-docx2md/internal/logging"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// run parses args, resolves the configuration and converts every
// discovered file.
func run(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseFlags(args, env.Stderr)
	if err != nil {
		if isHelp(err) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "docx2md %s\n", Version)
		return nil
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one file or directory, got %d", ErrUsage, len(positional))
	}

	setMaxProcs(flags.verbose, env.Stderr)
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	root, err := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	log := root.Named("docx2md")

	inputPath := resolveInputPath(positional, cfg)
	if inputPath == "" {
		printUsage(env.Stderr)
		return ErrNoInput
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	params, err := buildParams(cfg)
	if err != nil {
		return err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	files, err := discoverFiles(inputPath, cfg.Output.DefaultDir)
	if err != nil {
		return err
	}

	opts := []docx2md.Option{
		docx2md.WithImageDir(params.imageDir),
		docx2md.WithLogger(log),
	}
	if timeout > 0 {
		opts = append(opts, docx2md.WithTimeout(timeout))
	}

	poolSize := docx2md.ResolvePoolSize(workers)
	if flags.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d, files: %d\n", poolSize, len(files))
	}
	pool := env.NewPool(poolSize, opts...)
	defer pool.Close()

	results := convertBatch(ctx, pool, files, params, log)
	if failed := printResultsWithWriter(results, flags.quiet, flags.verbose, env); failed > 0 {
		return &batchError{failed: failed, total: len(results), first: firstError(results)}
	}
	return nil
}

// loadConfig loads the config named by the flag, or by DOCX2MD_CONFIG.
// Without either, defaults are used.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(name)
}

// mergeFlags applies explicitly set flags on top of cfg.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	if f.output != "" {
		cfg.Output.DefaultDir = f.output
	}
	if f.imageDir != "" {
		cfg.Output.ImageDir = f.imageDir
	}
	if f.html {
		cfg.Output.HTML = true
	}
	if f.pdf {
		cfg.Output.PDF = true
	}
	if f.css != "" {
		cfg.Output.CSS = f.css
	}
	if f.noImages {
		extract := false
		cfg.Images.Extract = &extract
	}
	if f.timeout != "" {
		cfg.Render.Timeout = f.timeout
	}
	if f.page.size != "" {
		cfg.Render.PageSize = f.page.size
	}
	if f.page.orientation != "" {
		cfg.Render.Orientation = f.page.orientation
	}
	if f.page.margin != 0 {
		cfg.Render.Margin = f.page.margin
	}
	if f.log.level != "" {
		cfg.Logging.Level = f.log.level
	}
	if f.log.format != "" {
		cfg.Logging.Format = f.log.format
	}
}

// resolveInputPath returns the positional argument, or the configured
// default input directory.
func resolveInputPath(positional []string, cfg *config.Config) string {
	if len(positional) > 0 {
		return positional[0]
	}
	return cfg.Input.DefaultDir
}

// buildParams turns the merged config into per-file conversion settings.
func buildParams(cfg *config.Config) (*conversionParams, error) {
	imageDir := cfg.Output.ImageDir
	if imageDir == "" {
		imageDir = docx2md.DefaultImageDir
	}
	if err := docx2md.ValidateImageDir(imageDir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	params := &conversionParams{
		imageDir:      imageDir,
		extractImages: cfg.ExtractImages(),
		html:          cfg.Output.HTML,
		pdf:           cfg.Output.PDF,
	}

	if cfg.Output.CSS != "" {
		css, err := os.ReadFile(cfg.Output.CSS) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		params.css = string(css)
	}

	if cfg.Output.PDF {
		params.page = buildPageSettings(cfg)
		if err := params.page.Validate(); err != nil {
			return nil, err
		}
	}

	return params, nil
}

// buildPageSettings fills unset render fields with the page defaults.
func buildPageSettings(cfg *config.Config) *docx2md.PageSettings {
	page := docx2md.DefaultPageSettings()
	if cfg.Render.PageSize != "" {
		page.Size = cfg.Render.PageSize
	}
	if cfg.Render.Orientation != "" {
		page.Orientation = cfg.Render.Orientation
	}
	if cfg.Render.Margin != 0 {
		page.Margin = cfg.Render.Margin
	}
	return page
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, path string) string {
	switch {
	case errors.Is(err, docx2md.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths("docx2md"))
	case errors.Is(err, docx2md.ErrOutputWrite):
		return hints.ForOutputDirectory()
	case errors.Is(err, docx2md.ErrNotDocx):
		return hints.ForNotDocx(path)
	}
	return ""
}

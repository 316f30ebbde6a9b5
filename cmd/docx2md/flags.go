package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// logFlags holds structured logging flags.
type logFlags struct {
	level  string
	format string
}

// cliFlags holds every flag of the docx2md command.
type cliFlags struct {
	config   string
	output   string
	workers  int
	timeout  string
	noImages bool
	imageDir string
	html     bool
	pdf      bool
	css      string
	page     pageFlags
	log      logFlags
	quiet    bool
	verbose  bool
	version  bool
}

// parseFlags parses args (without the program name) and returns the
// positional arguments.
func parseFlags(args []string, usageOut io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("docx2md", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	f := &cliFlags{}

	// I/O
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: next to each source)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto, max 8)")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")

	// Images and previews
	fs.BoolVar(&f.noImages, "no-images", false, "do not write extracted images")
	fs.StringVar(&f.imageDir, "image-dir", "", "image directory relative to the markdown (default: images)")
	fs.BoolVar(&f.html, "html", false, "also write an HTML preview")
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF of the preview (requires Chrome)")
	fs.StringVar(&f.css, "css", "", "stylesheet file for the preview")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF rendering timeout (e.g., 30s, 2m)")

	// Page
	fs.StringVarP(&f.page.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.page.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.page.margin, "margin", 0, "page margin in inches (0.25-3.0)")

	// Output verbosity
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and conversion reports")
	fs.StringVar(&f.log.level, "log-level", "", "log level: trace, debug, info, warn, error")
	fs.StringVar(&f.log.format, "log-format", "", "log format: console, json, pretty")
	fs.BoolVar(&f.version, "version", false, "show version information")

	fs.Usage = func() { printUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

package docx2md

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// ImageInfo is an image extracted from a source document.
type ImageInfo struct {
	Filename    string // file name under the image directory
	Content     []byte
	ContentType string
}

// Input contains conversion parameters.
type Input struct {
	// Markdown is the raw draft with placeholders (required).
	Markdown string

	// Images are bound to image placeholders in order: the Nth placeholder
	// references Images[N-1].
	Images []ImageInfo

	// Links maps relationship ids to URLs.
	Links map[string]string

	// Title is the HTML preview title.
	Title string

	// HTML requests an HTML preview of the cleaned markdown.
	HTML bool

	// PDF requests a PDF printed from the HTML preview.
	PDF bool

	// ImageBaseDir is the directory the image directory lives in. The PDF
	// renderer loads images from there. Empty means images are not shown in
	// the PDF.
	ImageBaseDir string

	// CSS is an optional stylesheet added to the preview.
	CSS string

	// Page configures the PDF page (nil = defaults).
	Page *PageSettings
}

// Report summarizes one conversion.
type Report struct {
	Headings   int
	ListBlocks int
	Tables     int
	Images     int
	TextLines  int

	ResolvedImages   int
	UnresolvedImages []int    // 1-based placeholder positions
	UnusedImages     []string // filenames no placeholder referenced
	ResolvedLinks    int
	UnknownLinks     []string // relationship ids without a URL
}

// HasProblems reports whether any placeholder could not be resolved or any
// image went unreferenced.
func (r Report) HasProblems() bool {
	return len(r.UnresolvedImages) > 0 || len(r.UnusedImages) > 0 || len(r.UnknownLinks) > 0
}

// Result is the output of one conversion.
type Result struct {
	Markdown string
	Images   []ImageInfo // all input images, referenced or not
	Report   Report
	HTML     []byte // nil unless requested
	PDF      []byte // nil unless requested
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout  time.Duration
	imageDir string
	logger   Logger
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// DefaultImageDir is the image directory, relative to the markdown file.
const DefaultImageDir = "images"

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docx2md: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithImageDir sets the directory image references point into, relative
// to the markdown file.
// Panics if dir is empty, absolute or escapes the markdown directory.
func WithImageDir(dir string) Option {
	if err := ValidateImageDir(dir); err != nil {
		panic("docx2md: " + err.Error())
	}
	return func(c *Converter) {
		c.cfg.imageDir = path.Clean(dir)
	}
}

// WithLogger sets the logger receiving conversion events.
func WithLogger(l Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

// ValidateImageDir checks that dir is a relative path below the markdown
// directory.
func ValidateImageDir(dir string) error {
	clean := path.Clean(strings.ReplaceAll(dir, `\`, "/"))
	switch {
	case strings.TrimSpace(dir) == "":
		return fmt.Errorf("image directory cannot be empty")
	case path.IsAbs(clean) || strings.Contains(clean, ":"):
		return fmt.Errorf("image directory must be relative: %q", dir)
	case clean == "." || clean == ".." || strings.HasPrefix(clean, "../"):
		return fmt.Errorf("image directory must be below the output directory: %q", dir)
	}
	return nil
}

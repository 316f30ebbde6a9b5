package docx2md

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-docx2md/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Cleaner       = (*pipeline.MarkdownCleaner)(nil)
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.StyleInjector = (*pipeline.CSSInjection)(nil)
	_ pipeline.Warner        = Logger(nil)
	_ pdfConverter           = (*rodConverter)(nil)
	_ pdfRenderer            = (*rodRenderer)(nil)
)

// Converter orchestrates the cleaning pipeline and the optional preview
// and PDF rendering.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter is safe for concurrent use only when PDF rendering is not
// requested; use a ConverterPool for parallel PDF output.
type Converter struct {
	cfg           converterConfig
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.StyleInjector
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter with default configuration.
// The browser used for PDF output is started on first use.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{
			timeout:  defaultTimeout,
			imageDir: DefaultImageDir,
			logger:   nopLogger{},
		},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		cssInjector:   &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c
}

// ImageDir returns the directory image references point into.
func (c *Converter) ImageDir() string {
	return c.cfg.imageDir
}

// Convert cleans input.Markdown and renders the requested outputs.
// Unresolved placeholders are not errors: they are listed in the report
// and logged at warn level.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Page.Validate(); err != nil {
		return nil, err
	}

	log := runLogger{Logger: c.cfg.logger, runID: uuid.NewString()}
	start := time.Now()
	log.Debug("conversion started",
		"title", input.Title,
		"bytes", len(input.Markdown),
		"images", len(input.Images),
		"links", len(input.Links),
	)

	refs := make([]pipeline.ImageRef, len(input.Images))
	for i, img := range input.Images {
		refs[i] = pipeline.ImageRef{Filename: img.Filename}
	}

	cleaned, err := pipeline.NewMarkdownCleaner(c.cfg.imageDir, log).Clean(ctx, input.Markdown, refs, input.Links)
	if err != nil {
		log.Error("cleaning failed", "error", err)
		return nil, fmt.Errorf("cleaning markdown: %w", err)
	}

	res := &Result{
		Markdown: cleaned.Markdown,
		Images:   input.Images,
		Report:   newReport(cleaned),
	}

	if input.HTML || input.PDF {
		if err := c.render(ctx, input, res, log); err != nil {
			log.Error("rendering failed", "error", err)
			return nil, err
		}
	}

	log.Info("conversion finished",
		"title", input.Title,
		"headings", res.Report.Headings,
		"list_blocks", res.Report.ListBlocks,
		"tables", res.Report.Tables,
		"resolved_images", res.Report.ResolvedImages,
		"unresolved_images", len(res.Report.UnresolvedImages),
		"resolved_links", res.Report.ResolvedLinks,
		"unknown_links", len(res.Report.UnknownLinks),
		"duration", time.Since(start),
	)
	return res, nil
}

// render produces the HTML preview and, when requested, the PDF.
func (c *Converter) render(ctx context.Context, input Input, res *Result, log Logger) error {
	htmlContent, err := c.htmlConverter.ToHTML(ctx, res.Markdown, input.Title)
	if err != nil {
		return fmt.Errorf("converting to HTML: %w", err)
	}

	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, input.CSS)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if input.HTML {
		res.HTML = []byte(htmlContent)
	}
	if !input.PDF {
		return nil
	}

	// The PDF is printed from a temp file, so image references must be
	// absolute.
	if input.ImageBaseDir != "" {
		htmlContent, err = pipeline.RewriteImagePaths(htmlContent, input.ImageBaseDir)
		if err != nil {
			return fmt.Errorf("rewriting image paths: %w", err)
		}
	}

	log.Debug("rendering PDF", "page", input.Page)
	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{Page: input.Page})
	if err != nil {
		return fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

func newReport(r *pipeline.CleanResult) Report {
	return Report{
		Headings:         r.Stats.Headings,
		ListBlocks:       r.Stats.ListBlocks,
		Tables:           r.Stats.Tables,
		Images:           r.Stats.Images,
		TextLines:        r.Stats.TextLines,
		ResolvedImages:   r.Images.Resolved,
		UnresolvedImages: r.Images.Unresolved,
		UnusedImages:     r.Images.Unused,
		ResolvedLinks:    r.Links.Resolved,
		UnknownLinks:     r.Links.Unknown,
	}
}

package docx2md

import (
	"errors"

	"github.com/alnah/go-docx2md/internal/docx"
	"github.com/alnah/go-docx2md/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrMalformedInput              = pipeline.ErrMalformedInput
	ErrInconsistentListIndentation = pipeline.ErrInconsistentListIndentation
	ErrHTMLConversion              = pipeline.ErrHTMLConversion

	// Source loading errors.
	ErrNotDocx          = docx.ErrNotDocx
	ErrDocxPart         = docx.ErrDocxPart
	ErrUnsupportedInput = errors.New("unsupported input format")
	ErrFrontMatter      = errors.New("invalid front matter")
	ErrImageRead        = errors.New("failed to read image")

	// Output errors.
	ErrOutputWrite = errors.New("failed to write output")

	// Browser and PDF errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
)

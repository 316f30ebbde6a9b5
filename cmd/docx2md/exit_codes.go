package main

import (
	"context"
	"errors"
	"os"

	docx2md "github.com/alnah/go-docx2md"
	"github.com/alnah/go-docx2md/internal/config"
)

// Exit codes for the docx2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, input document or validation
	ExitIO      = 3 // File not found, permission denied, write failures
	ExitBrowser = 4 // Browser/Chrome errors during PDF rendering
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, docx2md.ErrBrowserConnect) ||
		errors.Is(err, docx2md.ErrPageCreate) ||
		errors.Is(err, docx2md.ErrPageLoad) ||
		errors.Is(err, docx2md.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, docx2md.ErrImageRead) ||
		errors.Is(err, docx2md.ErrOutputWrite) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, docx2md.ErrUnsupportedInput) ||
		errors.Is(err, docx2md.ErrNotDocx) ||
		errors.Is(err, docx2md.ErrDocxPart) ||
		errors.Is(err, docx2md.ErrFrontMatter) ||
		errors.Is(err, docx2md.ErrMalformedInput) ||
		errors.Is(err, docx2md.ErrInconsistentListIndentation) ||
		errors.Is(err, docx2md.ErrInvalidPageSize) ||
		errors.Is(err, docx2md.ErrInvalidOrientation) ||
		errors.Is(err, docx2md.ErrInvalidMargin) {
		return ExitUsage
	}

	return ExitGeneral
}

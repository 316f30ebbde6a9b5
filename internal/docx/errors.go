package docx

import "errors"

var (
	// ErrNotDocx indicates the input is not a zip archive or has no main
	// document part.
	ErrNotDocx = errors.New("not a DOCX document")

	// ErrDocxPart indicates a package part could not be read or parsed.
	ErrDocxPart = errors.New("malformed DOCX part")
)

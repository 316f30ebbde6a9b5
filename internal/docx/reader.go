package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Image is an embedded picture, in the order its placeholder appears in the
// draft markdown.
type Image struct {
	Filename    string // <stem>_<n>.<ext>
	Content     []byte
	ContentType string
}

// Document is the draft rendering of a DOCX file.
type Document struct {
	// Markdown is the draft with image and link placeholders.
	Markdown string

	// Images holds one entry per image placeholder, in document order.
	// Placeholders whose bytes are identical share a Filename.
	Images []Image

	// Links maps external relationship ids to their targets.
	Links map[string]string

	// Warnings lists content that could not be carried into the draft.
	Warnings []string
}

// Open reads the DOCX file at path. Image filenames are derived from the
// file's base name.
func Open(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}
	defer func() { _ = zr.Close() }()

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return read(&zr.Reader, stem)
}

// Read reads a DOCX document from r. stem names the extracted images.
func Read(r io.ReaderAt, size int64, stem string) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}
	return read(zr, stem)
}

func read(zr *zip.Reader, stem string) (*Document, error) {
	p, err := openPackage(zr)
	if err != nil {
		return nil, err
	}

	root, err := p.parseXML(documentPart)
	if err != nil {
		return nil, err
	}
	body := xmlquery.QuerySelector(root, bodyExpr)
	if body == nil {
		return nil, fmt.Errorf("%w: %s has no body", ErrDocxPart, documentPart)
	}

	r := newRenderer(p, stem)
	r.blocks(body)

	links := make(map[string]string)
	for id, rel := range p.rels {
		if rel.External {
			links[id] = rel.Target
		}
	}

	return &Document{
		Markdown: r.markdown(),
		Images:   r.images,
		Links:    links,
		Warnings: r.warnings,
	}, nil
}

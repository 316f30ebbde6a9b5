package docx2md

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-docx2md/internal/docx"
)

// Supported source extensions.
const (
	ExtDocx         = ".docx"
	ExtMarkdown     = ".md"
	ExtMarkdownLong = ".markdown"
)

// Source is a document loaded from disk and ready for conversion.
type Source struct {
	Path  string
	Stem  string // base name without extension
	Input Input

	// Warnings lists content the loader could not carry into the draft.
	Warnings []string
}

// IsSupported reports whether path has an extension LoadFile accepts.
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtDocx, ExtMarkdown, ExtMarkdownLong:
		return true
	}
	return false
}

// LoadFile loads a .docx document or a raw .md/.markdown draft.
func LoadFile(path string) (*Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtDocx:
		return LoadDocx(path)
	case ExtMarkdown, ExtMarkdownLong:
		return LoadMarkdown(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedInput, path)
	}
}

// LoadDocx reads a DOCX document and renders its draft markdown, extracted
// images and external links.
func LoadDocx(path string) (*Source, error) {
	doc, err := docx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	stem := stemOf(path)
	images := make([]ImageInfo, len(doc.Images))
	for i, img := range doc.Images {
		images[i] = ImageInfo(img)
	}

	return &Source{
		Path: path,
		Stem: stem,
		Input: Input{
			Markdown: doc.Markdown,
			Images:   images,
			Links:    doc.Links,
			Title:    stem,
		},
		Warnings: doc.Warnings,
	}, nil
}

// sidecar is the optional front matter of a raw markdown draft.
type sidecar struct {
	Title  string            `yaml:"title"`
	Links  map[string]string `yaml:"links"`
	Images []string          `yaml:"images"`
}

// LoadMarkdown reads a raw markdown draft produced by another converter.
// Optional YAML front matter supplies the link map and the ordered image
// list, with image paths relative to the markdown file.
func LoadMarkdown(path string) (*Source, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var meta sidecar
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFrontMatter, path, err)
	}

	stem := stemOf(path)
	images, err := readSidecarImages(filepath.Dir(path), stem, meta.Images)
	if err != nil {
		return nil, err
	}

	title := meta.Title
	if title == "" {
		title = stem
	}

	return &Source{
		Path: path,
		Stem: stem,
		Input: Input{
			Markdown: string(body),
			Images:   images,
			Links:    meta.Links,
			Title:    title,
		},
	}, nil
}

// readSidecarImages loads the listed images and names them the way the
// DOCX reader does: <stem>_<n>.<ext>.
func readSidecarImages(dir, stem string, paths []string) ([]ImageInfo, error) {
	images := make([]ImageInfo, 0, len(paths))
	for i, p := range paths {
		full := p
		if !filepath.IsAbs(full) {
			full = filepath.Join(dir, filepath.FromSlash(p))
		}
		content, err := os.ReadFile(full) // #nosec G304 -- listed by the document author
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrImageRead, p, err)
		}

		ext := strings.ToLower(filepath.Ext(full))
		contentType := mime.TypeByExtension(ext)
		if contentType == "" {
			contentType = http.DetectContentType(content)
		}
		if i := strings.IndexByte(contentType, ';'); i >= 0 {
			contentType = strings.TrimSpace(contentType[:i])
		}
		if ext == "" {
			ext = ".bin"
		}

		images = append(images, ImageInfo{
			Filename:    fmt.Sprintf("%s_%d%s", stem, i, ext),
			Content:     content,
			ContentType: contentType,
		})
	}
	return images, nil
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

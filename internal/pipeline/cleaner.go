package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrMalformedInput indicates the raw markdown is empty or not valid UTF-8.
var ErrMalformedInput = errors.New("malformed input")

// Warner receives non-fatal resolution problems.
type Warner interface {
	Warn(msg string, args ...any)
}

// Stats counts the structural elements seen in one run.
type Stats struct {
	Headings   int
	ListBlocks int
	Tables     int
	Images     int
	TextLines  int
}

// CleanResult is the output of one cleaning run.
type CleanResult struct {
	Markdown string
	Stats    Stats
	Images   ImageResolution
	Links    LinkResolution
}

// Cleaner turns raw converter markdown into annotated, resolved markdown.
type Cleaner interface {
	Clean(ctx context.Context, raw string, images []ImageRef, links map[string]string) (*CleanResult, error)
}

// MarkdownCleaner runs the single forward pass (list normalization,
// annotation, table grouping) followed by the two resolution passes.
type MarkdownCleaner struct {
	preprocessor MarkdownPreprocessor
	imageDir     string
	warn         Warner
}

// NewMarkdownCleaner creates a cleaner that references images under
// imageDir. A nil warner discards warnings.
func NewMarkdownCleaner(imageDir string, warn Warner) *MarkdownCleaner {
	return &MarkdownCleaner{
		preprocessor: &RawMarkdownPreprocessor{},
		imageDir:     imageDir,
		warn:         warn,
	}
}

// Clean runs the pipeline over raw. It fails only on malformed input or a
// list segmentation defect; unresolved placeholders are reported in the
// result and passed to the warner.
func (c *MarkdownCleaner) Clean(ctx context.Context, raw string, images []ImageRef, links map[string]string) (*CleanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !utf8.ValidString(raw) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformedInput)
	}

	raw = c.preprocessor.PreprocessMarkdown(ctx, raw)
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedInput)
	}

	annotated, stats, err := annotateLines(splitLines(raw))
	if err != nil {
		return nil, err
	}
	stats.Tables = countTables(annotated)

	content := strings.Join(GroupTables(annotated), "\n")

	content, imgRes := ResolveImages(content, images, c.imageDir)
	for _, n := range imgRes.Unresolved {
		c.warnf("unresolved image placeholder", "position", n, "images", len(images))
	}
	for _, name := range imgRes.Unused {
		c.warnf("image not referenced by any placeholder", "filename", name)
	}

	content, linkRes := ResolveLinks(content, links)
	for _, id := range linkRes.Unknown {
		c.warnf("unknown link identifier", "id", id)
	}

	return &CleanResult{
		Markdown: content,
		Stats:    stats,
		Images:   imgRes,
		Links:    linkRes,
	}, nil
}

func (c *MarkdownCleaner) warnf(msg string, args ...any) {
	if c.warn != nil {
		c.warn.Warn(msg, args...)
	}
}

// annotateLines segments the input into list blocks and single lines,
// normalizes the former and annotates the latter.
func annotateLines(lines []string) ([]Line, Stats, error) {
	var stats Stats
	out := make([]Line, 0, len(lines))

	for i := 0; i < len(lines); {
		if IsListItem(lines[i]) {
			block, err := segmentListBlock(lines, i)
			if err != nil {
				return nil, stats, err
			}
			normalized, err := NormalizeListBlock(block)
			if err != nil {
				return nil, stats, fmt.Errorf("normalizing list at line %d: %w", i+1, err)
			}
			for _, l := range normalized {
				out = append(out, Line{Text: l})
			}
			stats.ListBlocks++
			i += len(block)
			continue
		}

		l := Annotate(lines[i], false)
		if l.Comment != "" {
			switch Classify(l.Text).Kind {
			case KindHeading:
				stats.Headings++
			case KindImage:
				stats.Images++
			case KindText:
				stats.TextLines++
			}
		}
		out = append(out, l)
		i++
	}
	return out, stats, nil
}

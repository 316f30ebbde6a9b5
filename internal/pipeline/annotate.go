package pipeline

import (
	"fmt"
	"strings"
)

// Structural-type comments emitted for downstream tools.
const (
	commentPrefix = "<!-- Type:"

	TableComment     = "<!-- Type: Table -->"
	ImageComment     = "<!-- Type: Image -->"
	TextBodyComment  = "<!-- Type: Text Body -->"
	ListBlockComment = "<!-- Type: List Block -->"
)

// HeadingComment returns the comment for a heading of the given level.
func HeadingComment(level int) string {
	return fmt.Sprintf("<!-- Type: Heading %d -->", level)
}

// IsMetadataComment reports whether line is a structural-type comment.
func IsMetadataComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), commentPrefix)
}

// Line is an output line with its optional structural-type comment.
// The comment is kept apart from the text until the stream is flattened,
// which lets the table grouper keep table rows contiguous.
type Line struct {
	Text    string
	Comment string
}

// Annotate trims trailing whitespace from line and attaches the comment its
// category requires. Text inside an active list block gets no comment:
// list blocks receive a single trailing comment instead.
func Annotate(line string, inList bool) Line {
	line = strings.TrimRight(line, " \t")
	out := Line{Text: line}

	cat := Classify(line)
	switch cat.Kind {
	case KindHeading:
		out.Comment = HeadingComment(cat.Level)
	case KindTableSeparator:
		out.Comment = TableComment
	case KindImage:
		out.Comment = ImageComment
	case KindText:
		if !inList && !IsMetadataComment(line) {
			out.Comment = TextBodyComment
		}
	}
	return out
}

package pipeline

import (
	"regexp"
	"strings"
)

// Kind is the structural category of a single markdown line.
type Kind int

const (
	KindBlank Kind = iota
	KindHeading
	KindListItem
	KindTableSeparator
	KindTableRow
	KindImage
	KindText
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindHeading:
		return "heading"
	case KindListItem:
		return "list-item"
	case KindTableSeparator:
		return "table-separator"
	case KindTableRow:
		return "table-row"
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Category is the classification of a line. Level is only meaningful
// for headings and holds the number of leading '#' characters.
type Category struct {
	Kind  Kind
	Level int
}

// Precompiled regex patterns for line classification.
var (
	// ATX heading: one or more '#' then whitespace
	headingPattern = regexp.MustCompile(`^(#+)\s`)

	// Bullet (*, -, +) or ordered (1.) marker as the first token
	listItemPattern = regexp.MustCompile(`^\s*(?:[*+-]|\d+\.)\s`)

	// Cell separator run between pipes: |---| or | :---: |
	tableSeparatorPattern = regexp.MustCompile(`\|\s*[-:]+\s*\|`)
)

// Classify maps a line to exactly one Category. Rules are evaluated in
// order and the first match wins. Classify is pure: reclassifying a line
// always yields the same result, and metadata comments classify as text.
func Classify(line string) Category {
	if m := headingPattern.FindStringSubmatch(line); m != nil {
		return Category{Kind: KindHeading, Level: len(m[1])}
	}
	if listItemPattern.MatchString(line) {
		return Category{Kind: KindListItem}
	}

	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "|") {
		if tableSeparatorPattern.MatchString(trimmed) {
			return Category{Kind: KindTableSeparator}
		}
		return Category{Kind: KindTableRow}
	}
	if strings.Contains(line, "![") && strings.Contains(line, "](") {
		return Category{Kind: KindImage}
	}
	if trimmed == "" {
		return Category{Kind: KindBlank}
	}
	return Category{Kind: KindText}
}

// IsListItem reports whether line starts with a list marker.
func IsListItem(line string) bool {
	return listItemPattern.MatchString(line)
}

// IsTableLine reports whether line belongs to a table block.
func IsTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

// IsBlank reports whether line is empty after trimming.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IndentWidth returns the number of leading space and tab characters.
func IndentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ErrInconsistentListIndentation indicates a block without any list item
// was handed to the list normalizer. This is a segmentation defect.
var ErrInconsistentListIndentation = errors.New("list block contains no list items")

const indentUnit = "  "

// Marker prefixes stripped from list items.
var (
	orderedPrefix = regexp.MustCompile(`^\d+\.\s*`)
	bulletPrefix  = regexp.MustCompile(`^[*+-]\s*`)
)

// indentLevels maps the distinct indentation widths of one list block to
// nesting levels, in first-seen order.
type indentLevels struct {
	level  map[int]int
	widths []int // sorted ascending
}

// buildIndentLevels scans the list items of a block top to bottom and
// assigns the next unused level to each newly seen width.
func buildIndentLevels(lines []string) indentLevels {
	m := indentLevels{level: make(map[int]int)}
	for _, line := range lines {
		if !IsListItem(line) {
			continue
		}
		w := IndentWidth(line)
		if _, ok := m.level[w]; !ok {
			m.level[w] = len(m.level)
			m.widths = append(m.widths, w)
		}
	}
	sort.Ints(m.widths)
	return m
}

// levelFor returns the level of the known width closest to w.
// Ties go to the first width in ascending order.
func (m indentLevels) levelFor(w int) int {
	closest := m.widths[0]
	best := absInt(w - closest)
	for _, known := range m.widths[1:] {
		if d := absInt(w - known); d < best {
			closest, best = known, d
		}
	}
	return m.level[closest]
}

// NormalizeListBlock rewrites a list block with canonical indentation and
// bullet markers. Items become "  "*level + "* " + content, continuation
// lines become "  "*(level+1) + content, blank lines pass through, and a
// single List Block comment is appended after the last line.
func NormalizeListBlock(lines []string) ([]string, error) {
	levels := buildIndentLevels(lines)
	if len(levels.widths) == 0 {
		return nil, ErrInconsistentListIndentation
	}

	result := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		if IsBlank(line) {
			result = append(result, line)
			continue
		}

		level := levels.levelFor(IndentWidth(line))
		content := strings.TrimSpace(line)

		if IsListItem(line) {
			result = append(result, strings.Repeat(indentUnit, level)+"* "+stripListMarker(content))
			continue
		}
		result = append(result, strings.Repeat(indentUnit, level+1)+content)
	}

	result = append(result, ListBlockComment)
	return result, nil
}

// stripListMarker removes the bullet or "N." marker from a trimmed item.
func stripListMarker(item string) string {
	if loc := orderedPrefix.FindStringIndex(item); loc != nil {
		return item[loc[1]:]
	}
	if loc := bulletPrefix.FindStringIndex(item); loc != nil {
		return item[loc[1]:]
	}
	return item
}

// listBlockEnd returns the index one past the last line of the list block
// starting at lines[start], which must be a list item.
//
// Without a blank line in between, text and image lines continue the block
// (converters wrap long items that way). After one or more blank lines the
// block continues only with another list item, or with text indented deeper
// than the shallowest item seen so far. Headings and table lines always end
// the block. Trailing blank lines are never part of the block.
func listBlockEnd(lines []string, start int) int {
	end := start + 1
	minWidth := IndentWidth(lines[start])

	for i := start + 1; i < len(lines); i++ {
		line := lines[i]
		switch Classify(line).Kind {
		case KindListItem:
			if w := IndentWidth(line); w < minWidth {
				minWidth = w
			}
			end = i + 1
		case KindText, KindImage:
			if IsMetadataComment(line) {
				return end
			}
			end = i + 1
		case KindBlank:
			next := i + 1
			for next < len(lines) && IsBlank(lines[next]) {
				next++
			}
			if next == len(lines) || !continuesAfterBlank(lines[next], minWidth) {
				return end
			}
			i = next - 1
		default:
			return end
		}
	}
	return end
}

// continuesAfterBlank reports whether line, following a blank separator,
// still belongs to a list block whose shallowest item is at minWidth.
func continuesAfterBlank(line string, minWidth int) bool {
	switch Classify(line).Kind {
	case KindListItem:
		return true
	case KindText, KindImage:
		return !IsMetadataComment(line) && IndentWidth(line) > minWidth
	default:
		return false
	}
}

// segmentListBlock checks a candidate block before normalization.
func segmentListBlock(lines []string, start int) ([]string, error) {
	end := listBlockEnd(lines, start)
	block := lines[start:end]
	if !IsListItem(block[0]) {
		return nil, fmt.Errorf("%w: block at line %d", ErrInconsistentListIndentation, start+1)
	}
	return block, nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

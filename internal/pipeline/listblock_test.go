package pipeline

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNormalizeListBlock - Level mapping and marker canonicalization
// ---------------------------------------------------------------------------

func TestNormalizeListBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "mixed markers with reused width",
			input: []string{"* Item A", "  * Item B", "- Item C"},
			want:  []string{"* Item A", "  * Item B", "* Item C", ListBlockComment},
		},
		{
			name:  "ordered list demoted to bullets",
			input: []string{"1. First", "2. Second", "10. Tenth"},
			want:  []string{"* First", "* Second", "* Tenth", ListBlockComment},
		},
		{
			name:  "four space nesting becomes two",
			input: []string{"* a", "    * b", "        * c", "    * d"},
			want:  []string{"* a", "  * b", "    * c", "  * d", ListBlockComment},
		},
		{
			name:  "level follows first appearance not magnitude",
			input: []string{"    * deep first", "* shallow second"},
			want:  []string{"* deep first", "  * shallow second", ListBlockComment},
		},
		{
			name:  "continuation indented one level deeper",
			input: []string{"* item", "wrapped text"},
			want:  []string{"* item", "  wrapped text", ListBlockComment},
		},
		{
			name:  "off by one continuation snaps to closest width",
			input: []string{"* a", "    * b", "     more of b"},
			want:  []string{"* a", "  * b", "    more of b", ListBlockComment},
		},
		{
			name:  "tie goes to smaller width",
			input: []string{"* a", "    * b", "  between"},
			want:  []string{"* a", "  * b", "  between", ListBlockComment},
		},
		{
			name:  "blank separators pass through",
			input: []string{"* a", "", "* b"},
			want:  []string{"* a", "", "* b", ListBlockComment},
		},
		{
			name:  "extra marker spacing removed",
			input: []string{"-    spaced", "+\ttabbed"},
			want:  []string{"* spaced", "* tabbed", ListBlockComment},
		},
		{
			name:  "tab indentation counts as width",
			input: []string{"* a", "\t* b"},
			want:  []string{"* a", "  * b", ListBlockComment},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeListBlock(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeListBlock()\ngot:  %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeListBlock_NoItems(t *testing.T) {
	t.Parallel()

	_, err := NormalizeListBlock([]string{"just text", "", "more"})
	if !errors.Is(err, ErrInconsistentListIndentation) {
		t.Fatalf("error = %v, want ErrInconsistentListIndentation", err)
	}
}

func TestNormalizeListBlock_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		{"* Item A", "  * Item B", "- Item C"},
		{"1. one", "   1. nested", "      - deeper", "2. two"},
		{"* item", "continued"},
	}

	for _, input := range inputs {
		first, err := NormalizeListBlock(input)
		if err != nil {
			t.Fatalf("first pass: %v", err)
		}
		// Drop the trailing comment before feeding the output back.
		body := first[:len(first)-1]
		second, err := NormalizeListBlock(body)
		if err != nil {
			t.Fatalf("second pass: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("not idempotent for %q\nfirst:  %q\nsecond: %q", input, first, second)
		}
	}
}

func TestNormalizeListBlock_SameWidthSameLevel(t *testing.T) {
	t.Parallel()

	input := []string{"* a", "   * b", "* c", "   * d", "      * e", "   * f"}
	got, err := NormalizeListBlock(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byWidth := make(map[int]int)
	for i, line := range input {
		level := IndentWidth(got[i]) / len(indentUnit)
		w := IndentWidth(line)
		if prev, ok := byWidth[w]; ok && prev != level {
			t.Errorf("width %d mapped to levels %d and %d", w, prev, level)
		}
		byWidth[w] = level
	}
}

func TestNormalizeListBlock_NoNumericMarkers(t *testing.T) {
	t.Parallel()

	got, err := NormalizeListBlock([]string{"1. a", "  2. b", "3. c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, line := range got[:len(got)-1] {
		if !strings.HasPrefix(strings.TrimSpace(line), "* ") {
			t.Errorf("line %q does not use the canonical marker", line)
		}
		if orderedPrefix.MatchString(strings.TrimSpace(line)) {
			t.Errorf("line %q kept a numeric marker", line)
		}
	}
}

// ---------------------------------------------------------------------------
// TestListBlockEnd - Block segmentation
// ---------------------------------------------------------------------------

func TestListBlockEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"single item", []string{"* a"}, 1},
		{"items then end", []string{"* a", "* b"}, 2},
		{"blank then text ends block", []string{"* a", "", "Paragraph"}, 1},
		{"blank then item continues", []string{"* a", "", "* b"}, 3},
		{"several blanks then item", []string{"* a", "", "", "- b"}, 4},
		{"trailing blanks excluded", []string{"* a", "", ""}, 1},
		{"lazy continuation", []string{"* a", "wrapped", "* b"}, 3},
		{"indented text after blank", []string{"* a", "", "  more a"}, 3},
		{"heading ends block", []string{"* a", "# Next"}, 1},
		{"table ends block", []string{"* a", "| x |"}, 1},
		{"blank then table ends block", []string{"* a", "", "  | x |"}, 1},
		{"image continues block", []string{"* a", "![](data:image/png;x)"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := listBlockEnd(tt.lines, 0); got != tt.want {
				t.Errorf("listBlockEnd(%q) = %d, want %d", tt.lines, got, tt.want)
			}
		})
	}
}

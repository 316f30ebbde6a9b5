package pipeline

import (
	"reflect"
	"testing"
)

func plainLines(texts ...string) []Line {
	lines := make([]Line, len(texts))
	for i, s := range texts {
		lines[i] = Line{Text: s}
	}
	return lines
}

// ---------------------------------------------------------------------------
// TestGroupTables - Table isolation
// ---------------------------------------------------------------------------

func TestGroupTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []Line
		want  []string
	}{
		{
			name:  "rows then text get one blank",
			input: plainLines("| a |", "| b |", "text"),
			want:  []string{"| a |", "| b |", "", "text"},
		},
		{
			name:  "rows then blank keep single blank",
			input: plainLines("| a |", "", "text"),
			want:  []string{"| a |", "", "text"},
		},
		{
			name:  "table at end of stream",
			input: plainLines("intro", "| a |", "| b |"),
			want:  []string{"intro", "| a |", "| b |", ""},
		},
		{
			name:  "blank inside table splits blocks",
			input: plainLines("| a |", "", "| b |"),
			want:  []string{"| a |", "", "| b |", ""},
		},
		{
			name:  "no tables passes through",
			input: plainLines("one", "", "two"),
			want:  []string{"one", "", "two"},
		},
		{
			name: "separator comment hoisted before block",
			input: []Line{
				{Text: "| h |"},
				{Text: "|---|", Comment: TableComment},
				{Text: "| v |"},
				{Text: "after", Comment: TextBodyComment},
			},
			want: []string{TableComment, "| h |", "|---|", "| v |", "", "after", TextBodyComment},
		},
		{
			name: "comments of non-table lines follow their line",
			input: []Line{
				{Text: "# Title", Comment: HeadingComment(1)},
				{Text: ""},
			},
			want: []string{"# Title", HeadingComment(1), ""},
		},
		{
			name:  "indented rows are table lines",
			input: plainLines("  | a |", "text"),
			want:  []string{"  | a |", "", "text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := GroupTables(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GroupTables()\ngot:  %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestCountTables(t *testing.T) {
	t.Parallel()

	lines := plainLines("| a |", "| b |", "", "| c |", "text", "| d |")
	if got := countTables(lines); got != 3 {
		t.Errorf("countTables() = %d, want 3", got)
	}
}

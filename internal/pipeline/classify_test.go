package pipeline

import "testing"

// ---------------------------------------------------------------------------
// TestClassify - Ordered classification rules
// ---------------------------------------------------------------------------

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		line  string
		want  Kind
		level int
	}{
		{"heading level 1", "# Title", KindHeading, 1},
		{"heading level 3", "### Section", KindHeading, 3},
		{"heading with tab", "##\tTabbed", KindHeading, 2},
		{"hash without space is text", "#hashtag", KindText, 0},
		{"indented hash is text", "  # not heading", KindText, 0},
		{"asterisk item", "* item", KindListItem, 0},
		{"dash item", "- item", KindListItem, 0},
		{"plus item", "+ item", KindListItem, 0},
		{"ordered item", "12. item", KindListItem, 0},
		{"indented item", "    * nested", KindListItem, 0},
		{"bold is not a list", "**bold** text", KindText, 0},
		{"thematic break is not a list", "---", KindText, 0},
		{"number without dot", "3 apples", KindText, 0},
		{"table separator", "|---|---|", KindTableSeparator, 0},
		{"table separator with colons", "| :--- | ---: |", KindTableSeparator, 0},
		{"indented table separator", "  | --- | --- |", KindTableSeparator, 0},
		{"table row", "| a | b |", KindTableRow, 0},
		{"table row with dash text", "| - item |", KindTableRow, 0},
		{"image", "![alt](images/a.png)", KindImage, 0},
		{"image placeholder", "![](data:image/png;base64,AAAA)", KindImage, 0},
		{"inline image in text", "see ![x](y.png) here", KindImage, 0},
		{"bracket without image", "[link](http://x)", KindText, 0},
		{"plain text", "Hello world", KindText, 0},
		{"metadata comment is text", "<!-- Type: Text Body -->", KindText, 0},
		{"empty", "", KindBlank, 0},
		{"whitespace only", "  \t ", KindBlank, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.line)
			if got.Kind != tt.want {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.line, got.Kind, tt.want)
			}
			if got.Level != tt.level {
				t.Errorf("Classify(%q).Level = %d, want %d", tt.line, got.Level, tt.level)
			}
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	t.Parallel()

	lines := []string{"# T", "* a", "|---|", "| a |", "![](x.png)", "text", "", HeadingComment(2)}
	for _, line := range lines {
		first := Classify(line)
		if again := Classify(line); again != first {
			t.Errorf("Classify(%q) not stable: %v then %v", line, first, again)
		}
	}
}

// ---------------------------------------------------------------------------
// TestIndentWidth
// ---------------------------------------------------------------------------

func TestIndentWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want int
	}{
		{"", 0},
		{"text", 0},
		{"  text", 2},
		{"\t* item", 1},
		{"    ", 4},
	}

	for _, tt := range tests {
		if got := IndentWidth(tt.line); got != tt.want {
			t.Errorf("IndentWidth(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	if got := KindTableSeparator.String(); got != "table-separator" {
		t.Errorf("String() = %q, want %q", got, "table-separator")
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Errorf("String() = %q, want %q", got, "unknown")
	}
}

package pipeline

// GroupTables flattens an annotated line stream, isolating every table
// block with a trailing blank line.
//
// Consecutive table lines are buffered. When a non-table line arrives the
// buffer is flushed unchanged and exactly one blank line separates it from
// what follows; a following line that is already blank serves as that
// separator. An open buffer at the end of the stream is flushed followed by
// one blank line. A blank line inside a table terminates it, and fragments
// are never merged.
//
// Comments attached to table lines are emitted just before the block, so
// the pipe rows stay contiguous and still render as one table.
func GroupTables(lines []Line) []string {
	out := make([]string, 0, len(lines)*2)
	var table []Line

	flush := func() {
		for _, l := range table {
			if l.Comment != "" {
				out = append(out, l.Comment)
			}
		}
		for _, l := range table {
			out = append(out, l.Text)
		}
		table = table[:0]
	}

	for _, l := range lines {
		if IsTableLine(l.Text) {
			table = append(table, l)
			continue
		}
		if len(table) > 0 {
			flush()
			if !IsBlank(l.Text) {
				out = append(out, "")
			}
		}
		out = append(out, l.Text)
		if l.Comment != "" {
			out = append(out, l.Comment)
		}
	}

	if len(table) > 0 {
		flush()
		out = append(out, "")
	}
	return out
}

// countTables returns the number of table blocks in a line stream.
func countTables(lines []Line) int {
	n := 0
	inTable := false
	for _, l := range lines {
		isTable := IsTableLine(l.Text)
		if isTable && !inTable {
			n++
		}
		inTable = isTable
	}
	return n
}

package main

import (
	"fmt"
	"io"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docx2md [flags] <file|dir>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Word documents (.docx) or raw markdown drafts (.md, .markdown)")
	fmt.Fprintln(w, "into clean, annotated markdown with extracted images.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file|dir    Source file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to each source)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto, max 8)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images and previews:")
	fmt.Fprintln(w, "      --no-images           Do not write extracted images")
	fmt.Fprintln(w, "      --image-dir <dir>     Image directory relative to the markdown (default: images)")
	fmt.Fprintln(w, "      --html                Also write <stem>.html")
	fmt.Fprintln(w, "      --pdf                 Also write <stem>.pdf (requires Chrome)")
	fmt.Fprintln(w, "      --css <file>          Stylesheet for the preview")
	fmt.Fprintln(w, "  -t, --timeout <dur>       PDF rendering timeout (default: 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page (PDF only):")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and conversion reports")
	fmt.Fprintln(w, "      --log-level <s>       trace, debug, info, warn, error (default: warn)")
	fmt.Fprintln(w, "      --log-format <s>      console, json, pretty (default: console)")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  <out>/<stem>/<stem>.md, images under <out>/<stem>/images/")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOCX2MD_CONFIG, DOCX2MD_INPUT_DIR, DOCX2MD_OUTPUT_DIR, DOCX2MD_IMAGE_DIR,")
	fmt.Fprintln(w, "  DOCX2MD_LOG_LEVEL, DOCX2MD_LOG_FORMAT, DOCX2MD_TIMEOUT, DOCX2MD_WORKERS,")
	fmt.Fprintln(w, "  DOCX2MD_PAGE_SIZE")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 general, 2 usage/config/input, 3 I/O, 4 browser/PDF")
}

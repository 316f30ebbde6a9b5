// Package docx2md turns word-processing documents into clean, annotated
// Markdown.
//
// # Quick Start
//
// Load a document, convert it, and write the result:
//
//	src, err := docx2md.LoadFile("report.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv := docx2md.NewConverter()
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, src.Input)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.Markdown)
//
// # Conversion Pipeline
//
// A raw draft (from the built-in DOCX reader or from another converter)
// goes through these stages:
//
//  1. Line ending and byte order mark normalization
//  2. List blocks renormalized to "*" markers and two-space nesting
//  3. Structural comments (<!-- Type: ... -->) after headings, tables,
//     images and body text
//  4. Tables isolated from the following content by one blank line
//  5. Image placeholders bound to extracted images by position
//  6. Link placeholders bound to URLs by relationship id
//
// Optionally the cleaned markdown is rendered as an HTML preview via
// Goldmark, and the preview printed to PDF via headless Chrome (go-rod).
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := docx2md.NewConverter(
//	    docx2md.WithImageDir("media"),
//	    docx2md.WithTimeout(2 * time.Minute),
//	    docx2md.WithLogger(logger),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, docx2md.Input{
//	    Markdown:     raw,
//	    Images:       images,
//	    Links:        map[string]string{"rId7": "https://example.com"},
//	    HTML:         true,
//	    PDF:          true,
//	    ImageBaseDir: "/out/report", // where images/ was written
//	})
//
// # Parallel Processing
//
// For batch PDF rendering, use ConverterPool to share browser instances:
//
//	pool := docx2md.NewConverterPool(4)
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Output Layout
//
// WriteOutput stores a result the way the command line tool does:
//
//	out/
//	└── report/
//	    ├── report.md
//	    ├── report.html   (optional)
//	    ├── report.pdf    (optional)
//	    └── images/
//	        ├── report_0.png
//	        └── report_1.jpeg
package docx2md

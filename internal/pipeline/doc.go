// Package pipeline implements the markdown cleaning pipeline.
//
// Raw markdown produced by a document-to-markdown converter goes through
// one forward pass and two resolution passes:
//   - line classification (headings, list items, table rows, images, text)
//   - list block renormalization (indent levels, canonical "*" markers)
//   - structural-type annotation (<!-- Type: ... --> comments)
//   - table grouping (contiguous pipe rows isolated by a blank line)
//   - image placeholder resolution, by position
//   - link placeholder resolution, by relationship id
//
// The package also renders the cleaned markdown as an HTML preview via
// Goldmark. It performs no filesystem I/O; reading documents and writing
// results is left to callers.
package pipeline

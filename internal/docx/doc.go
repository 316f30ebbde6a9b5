// Package docx reads Office Open XML word-processing documents and renders
// a first-draft markdown from them.
//
// The draft is deliberately raw: list items keep their source indentation
// and markers, images are emitted as data placeholders carrying their
// relationship id, and external hyperlinks are emitted as rel="..." link
// placeholders. The markdown cleaning pipeline turns that draft into the
// final annotated document.
package docx

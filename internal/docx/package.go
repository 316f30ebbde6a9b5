package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Well-known part names.
const (
	contentTypesPart = "[Content_Types].xml"
	documentPart     = "word/document.xml"
	documentRelsPart = "word/_rels/document.xml.rels"
	stylesPart       = "word/styles.xml"
)

// maxPartSize bounds the decompressed size of a single part.
const maxPartSize = 64 << 20

// Precompiled queries over package parts. local-name() keeps them
// independent of the prefixes a producer chose.
var (
	defaultTypeExpr  = xpath.MustCompile(`//*[local-name()='Default']`)
	overrideTypeExpr = xpath.MustCompile(`//*[local-name()='Override']`)
	relationshipExpr = xpath.MustCompile(`//*[local-name()='Relationship']`)
	styleExpr        = xpath.MustCompile(`//*[local-name()='style']`)
	bodyExpr         = xpath.MustCompile(`//*[local-name()='body']`)
)

// relationship is one entry of the main document's relationship part.
type relationship struct {
	Type     string
	Target   string
	External bool
}

// contentTypes maps parts to MIME types.
type contentTypes struct {
	defaults  map[string]string // lowercase extension -> type
	overrides map[string]string // "/word/media/x.png" -> type
}

func (c contentTypes) lookup(part string) string {
	if ct, ok := c.overrides["/"+part]; ok {
		return ct
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(part), "."))
	return c.defaults[ext]
}

// pkg is an opened OOXML package.
type pkg struct {
	files  map[string]*zip.File
	types  contentTypes
	rels   map[string]relationship
	styles map[string]string // style id -> style name
}

func openPackage(zr *zip.Reader) (*pkg, error) {
	p := &pkg{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		p.files[strings.TrimPrefix(f.Name, "/")] = f
	}
	if _, ok := p.files[documentPart]; !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrNotDocx, documentPart)
	}

	var err error
	if p.types, err = p.parseContentTypes(); err != nil {
		return nil, err
	}
	if p.rels, err = p.parseRelationships(); err != nil {
		return nil, err
	}
	if p.styles, err = p.parseStyles(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *pkg) has(name string) bool {
	_, ok := p.files[name]
	return ok
}

// readPart returns the decompressed bytes of a part.
func (p *pkg) readPart(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s not found", ErrDocxPart, name)
	}
	if f.UncompressedSize64 > maxPartSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrDocxPart, name, maxPartSize)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocxPart, name, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, maxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocxPart, name, err)
	}
	if len(data) > maxPartSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrDocxPart, name, maxPartSize)
	}
	return data, nil
}

func (p *pkg) parseXML(name string) (*xmlquery.Node, error) {
	data, err := p.readPart(name)
	if err != nil {
		return nil, err
	}
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocxPart, name, err)
	}
	return root, nil
}

// parseContentTypes reads [Content_Types].xml. A package without one is
// tolerated; image types then fall back to the file extension.
func (p *pkg) parseContentTypes() (contentTypes, error) {
	ct := contentTypes{defaults: map[string]string{}, overrides: map[string]string{}}
	if !p.has(contentTypesPart) {
		return ct, nil
	}

	root, err := p.parseXML(contentTypesPart)
	if err != nil {
		return ct, err
	}
	for _, n := range xmlquery.QuerySelectorAll(root, defaultTypeExpr) {
		ct.defaults[strings.ToLower(attr(n, "Extension"))] = attr(n, "ContentType")
	}
	for _, n := range xmlquery.QuerySelectorAll(root, overrideTypeExpr) {
		ct.overrides[attr(n, "PartName")] = attr(n, "ContentType")
	}
	return ct, nil
}

// parseRelationships reads the main document's relationships.
func (p *pkg) parseRelationships() (map[string]relationship, error) {
	rels := make(map[string]relationship)
	if !p.has(documentRelsPart) {
		return rels, nil
	}

	root, err := p.parseXML(documentRelsPart)
	if err != nil {
		return nil, err
	}
	for _, n := range xmlquery.QuerySelectorAll(root, relationshipExpr) {
		id := attr(n, "Id")
		if id == "" {
			continue
		}
		rels[id] = relationship{
			Type:     attr(n, "Type"),
			Target:   attr(n, "Target"),
			External: strings.EqualFold(attr(n, "TargetMode"), "External"),
		}
	}
	return rels, nil
}

// parseStyles maps paragraph style ids to their display names, so that
// headings are recognized in documents whose style ids are localized.
func (p *pkg) parseStyles() (map[string]string, error) {
	styles := make(map[string]string)
	if !p.has(stylesPart) {
		return styles, nil
	}

	root, err := p.parseXML(stylesPart)
	if err != nil {
		return nil, err
	}
	for _, n := range xmlquery.QuerySelectorAll(root, styleExpr) {
		if id := attr(n, "styleId"); id != "" {
			styles[id] = attr(child(n, "name"), "val")
		}
	}
	return styles, nil
}

// resolvePart turns a relationship target into a part name.
func resolvePart(target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimPrefix(target, "/"))
	}
	return path.Join("word", target)
}

// attr returns the value of the attribute with the given local name.
func attr(n *xmlquery.Node, local string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Name.Local == local && a.Name.Space != "xmlns" {
			return a.Value
		}
	}
	return ""
}

// child returns the first element child with the given local name.
func child(n *xmlquery.Node, local string) *xmlquery.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			return c
		}
	}
	return nil
}

// toggle reports whether an on/off property element such as <w:b/> is set.
func toggle(n *xmlquery.Node) bool {
	if n == nil {
		return false
	}
	switch strings.ToLower(attr(n, "val")) {
	case "0", "false", "off", "none":
		return false
	}
	return true
}

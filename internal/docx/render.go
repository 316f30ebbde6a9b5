package docx

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/zeebo/blake3"
)

// listIndent is the source indentation per list level in the draft.
const listIndent = "    "

var (
	headingStylePattern = regexp.MustCompile(`(?i)^heading\s*([1-9])$`)
	listStylePattern    = regexp.MustCompile(`(?i)^list\s*(bullet|number)\s*([2-9])?$`)

	// Leading sequences that would make a prose line read as structure.
	leadingMarkerPattern  = regexp.MustCompile(`^([*+-]\s|#+\s|\|)`)
	leadingOrderedPattern = regexp.MustCompile(`^(\d+)\.(\s)`)

	blipExpr      = xpath.MustCompile(`.//*[local-name()='blip']`)
	docPrExpr     = xpath.MustCompile(`.//*[local-name()='docPr']`)
	imageDataExpr = xpath.MustCompile(`.//*[local-name()='imagedata']`)
)

var altTextReplacer = strings.NewReplacer("[", "", "]", "", "\n", " ", "\r", " ")

// renderer walks the document body and accumulates draft lines.
type renderer struct {
	pkg      *pkg
	stem     string
	lines    []string
	inList   bool
	images   []Image
	byDigest map[[32]byte]string
	warnings []string
}

func newRenderer(p *pkg, stem string) *renderer {
	return &renderer{
		pkg:      p,
		stem:     stem,
		byDigest: make(map[[32]byte]string),
	}
}

func (r *renderer) markdown() string {
	lines := r.lines
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// block appends lines as a standalone block separated by one blank line.
func (r *renderer) block(lines ...string) {
	r.separate()
	r.lines = append(r.lines, lines...)
	r.inList = false
}

func (r *renderer) separate() {
	if n := len(r.lines); n > 0 && r.lines[n-1] != "" {
		r.lines = append(r.lines, "")
	}
}

func (r *renderer) warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// blocks renders the block-level children of parent in order.
func (r *renderer) blocks(parent *xmlquery.Node) {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch c.Data {
		case "p":
			r.paragraph(c)
		case "tbl":
			r.table(c)
		case "sdt", "sdtContent", "customXml", "ins", "smartTag":
			r.blocks(c)
		}
	}
}

// paragraphProps are the paragraph properties the draft cares about.
type paragraphProps struct {
	heading int
	list    bool
	level   int
	ordered bool
}

func (r *renderer) readProps(p *xmlquery.Node) paragraphProps {
	var props paragraphProps
	pPr := child(p, "pPr")
	if pPr == nil {
		return props
	}

	styleID := attr(child(pPr, "pStyle"), "val")
	names := []string{styleID, r.pkg.styles[styleID]}

	for _, name := range names {
		if m := headingStylePattern.FindStringSubmatch(name); m != nil {
			props.heading, _ = strconv.Atoi(m[1])
			return props
		}
		if strings.EqualFold(name, "title") {
			props.heading = 1
			return props
		}
	}

	for _, name := range names {
		if strings.Contains(strings.ToLower(name), "number") {
			props.ordered = true
		}
		if m := listStylePattern.FindStringSubmatch(name); m != nil {
			props.list = true
			if m[2] != "" {
				n, _ := strconv.Atoi(m[2])
				props.level = n - 1
			}
		}
	}

	if numPr := child(pPr, "numPr"); numPr != nil {
		if attr(child(numPr, "numId"), "val") != "0" {
			props.list = true
			if lvl, err := strconv.Atoi(attr(child(numPr, "ilvl"), "val")); err == nil && lvl >= 0 {
				props.level = lvl
			}
		}
	}
	return props
}

func (r *renderer) paragraph(p *xmlquery.Node) {
	props := r.readProps(p)
	text := strings.TrimSpace(r.inline(p))
	if text == "" {
		return
	}

	switch {
	case props.heading > 0:
		r.block(strings.Repeat("#", props.heading) + " " + text)
	case props.list:
		if !r.inList {
			r.separate()
		}
		marker := "*"
		if props.ordered {
			marker = "1."
		}
		r.lines = append(r.lines, strings.Repeat(listIndent, props.level)+marker+" "+text)
		r.inList = true
	default:
		r.block(escapeLeading(text))
	}
}

// escapeLeading keeps prose that happens to start like markdown structure
// from being read as a heading, list item or table row.
func escapeLeading(text string) string {
	if leadingOrderedPattern.MatchString(text) {
		return leadingOrderedPattern.ReplaceAllString(text, `$1\.$2`)
	}
	return leadingMarkerPattern.ReplaceAllString(text, `\$1`)
}

func (r *renderer) table(tbl *xmlquery.Node) {
	var rows []string
	for tr := tbl.FirstChild; tr != nil; tr = tr.NextSibling {
		if tr.Type != xmlquery.ElementNode || tr.Data != "tr" {
			continue
		}
		var cells []string
		for tc := tr.FirstChild; tc != nil; tc = tc.NextSibling {
			if tc.Type == xmlquery.ElementNode && tc.Data == "tc" {
				cells = append(cells, r.cellText(tc))
			}
		}
		if len(cells) == 0 {
			continue
		}
		rows = append(rows, "| "+strings.Join(cells, " | ")+" |")
		if len(rows) == 1 {
			rows = append(rows, "|"+strings.Repeat(" --- |", len(cells)))
		}
	}
	if len(rows) > 0 {
		r.block(rows...)
	}
}

// cellText flattens the paragraphs of a cell, nested tables included, into
// one line.
func (r *renderer) cellText(tc *xmlquery.Node) string {
	var parts []string
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			if c.Data == "p" {
				if t := strings.TrimSpace(r.inline(c)); t != "" {
					parts = append(parts, t)
				}
				continue
			}
			walk(c)
		}
	}
	walk(tc)
	return strings.ReplaceAll(strings.Join(parts, " "), "|", `\|`)
}

// inline renders the runs of a paragraph.
func (r *renderer) inline(p *xmlquery.Node) string {
	var b inlineBuilder
	r.runs(p, &b)
	return b.String()
}

func (r *renderer) runs(n *xmlquery.Node, b *inlineBuilder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch c.Data {
		case "r":
			r.run(c, b)
		case "hyperlink":
			r.hyperlink(c, b)
		case "pPr", "rPr", "del", "moveFrom", "bookmarkStart", "bookmarkEnd":
		default:
			r.runs(c, b)
		}
	}
}

func (r *renderer) run(run *xmlquery.Node, b *inlineBuilder) {
	rPr := child(run, "rPr")
	bold := toggle(child(rPr, "b"))
	italic := toggle(child(rPr, "i"))

	for c := run.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch c.Data {
		case "t":
			b.text(c.InnerText(), bold, italic)
		case "tab", "br", "cr":
			b.text(" ", bold, italic)
		case "noBreakHyphen":
			b.text("-", bold, italic)
		case "drawing":
			r.drawing(c, b)
		case "pict", "object":
			r.picture(c, b)
		}
	}
}

// hyperlink emits external links as relationship placeholders. Internal
// anchors keep their text only. Raw markdown inside the link, such as an
// image placeholder, is emitted ahead of it so that every recorded image
// keeps its placeholder.
func (r *renderer) hyperlink(h *xmlquery.Node, b *inlineBuilder) {
	id := attr(h, "id")
	if id == "" {
		r.runs(h, b)
		return
	}
	var inner, label inlineBuilder
	r.runs(h, &inner)
	for _, s := range inner.segs {
		if s.raw {
			b.raw(s.text)
			continue
		}
		label.text(s.text, s.bold, s.italic)
	}
	text := altTextReplacer.Replace(strings.TrimSpace(label.String()))
	b.raw(fmt.Sprintf(`[%s](rel="%s")`, text, id))
}

func (r *renderer) drawing(d *xmlquery.Node, b *inlineBuilder) {
	blip := xmlquery.QuerySelector(d, blipExpr)
	if blip == nil {
		return
	}
	alt := attr(xmlquery.QuerySelector(d, docPrExpr), "descr")
	if id := attr(blip, "embed"); id != "" {
		r.image(id, alt, b)
		return
	}
	if id := attr(blip, "link"); id != "" {
		r.image(id, alt, b)
	}
}

func (r *renderer) picture(p *xmlquery.Node, b *inlineBuilder) {
	data := xmlquery.QuerySelector(p, imageDataExpr)
	if data == nil {
		return
	}
	if id := attr(data, "id"); id != "" {
		r.image(id, attr(data, "title"), b)
	}
}

// image emits a placeholder for an embedded picture and records its bytes.
// External pictures become ordinary image links since there is nothing to
// extract.
func (r *renderer) image(relID, alt string, b *inlineBuilder) {
	alt = altTextReplacer.Replace(strings.TrimSpace(alt))

	rel, ok := r.pkg.rels[relID]
	if !ok {
		r.warnf("image relationship %s not found", relID)
		return
	}
	if rel.External {
		b.raw(fmt.Sprintf("![%s](%s)", alt, rel.Target))
		return
	}

	part := resolvePart(rel.Target)
	data, err := r.pkg.readPart(part)
	if err != nil {
		r.warnf("image %s: %v", part, err)
		return
	}

	ct := imageContentType(r.pkg.types.lookup(part), part)
	digest := blake3.Sum256(data)
	name, seen := r.byDigest[digest]
	if !seen {
		name = fmt.Sprintf("%s_%d.%s", r.stem, len(r.byDigest), imageExtension(ct, part))
		r.byDigest[digest] = name
	}

	r.images = append(r.images, Image{Filename: name, Content: data, ContentType: ct})
	b.raw(fmt.Sprintf("![%s](data:%s;rel=%s)", alt, ct, relID))
}

// segment is a run of identically formatted text, or raw markdown.
type segment struct {
	text   string
	bold   bool
	italic bool
	raw    bool
}

// inlineBuilder merges adjacent runs with the same formatting so that
// split runs do not produce "**a****b**".
type inlineBuilder struct {
	segs []segment
}

func (b *inlineBuilder) text(s string, bold, italic bool) {
	if s == "" {
		return
	}
	if n := len(b.segs); n > 0 {
		last := &b.segs[n-1]
		if !last.raw && last.bold == bold && last.italic == italic {
			last.text += s
			return
		}
	}
	b.segs = append(b.segs, segment{text: s, bold: bold, italic: italic})
}

func (b *inlineBuilder) raw(s string) {
	b.segs = append(b.segs, segment{text: s, raw: true})
}

func (b *inlineBuilder) String() string {
	var sb strings.Builder
	for _, s := range b.segs {
		sb.WriteString(s.render())
	}
	return sb.String()
}

func (s segment) render() string {
	if s.raw || (!s.bold && !s.italic) {
		return s.text
	}
	core := strings.TrimSpace(s.text)
	if core == "" {
		return s.text
	}
	lead := s.text[:strings.Index(s.text, core)]
	trail := s.text[len(lead)+len(core):]

	marker := ""
	if s.bold {
		marker += "**"
	}
	if s.italic {
		marker += "*"
	}
	return lead + marker + core + marker + trail
}

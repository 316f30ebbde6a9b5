package docx

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const wordNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
	`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture" ` +
	`xmlns:v="urn:schemas-microsoft-com:vml"`

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Default Extension="png" ContentType="image/png"/>
<Default Extension="jpeg" ContentType="image/jpeg"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const (
	imageRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	linkRelType  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// docxFixture describes a package to assemble in tests.
type docxFixture struct {
	body   string            // inner XML of <w:body>
	rels   string            // <Relationship> elements
	styles string            // <w:style> elements, optional
	parts  map[string][]byte // extra parts such as media
}

func (f docxFixture) bytes(t *testing.T) []byte {
	t.Helper()

	parts := map[string][]byte{
		contentTypesPart: []byte(contentTypesXML),
		documentPart: []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document ` + wordNamespaces + `><w:body>` + f.body + `</w:body></w:document>`),
		documentRelsPart: []byte(`<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			f.rels + `</Relationships>`),
	}
	if f.styles != "" {
		parts[stylesPart] = []byte(`<w:styles ` + wordNamespaces + `>` + f.styles + `</w:styles>`)
	}
	for name, data := range f.parts {
		parts[name] = data
	}
	return buildZip(t, parts)
}

func (f docxFixture) read(t *testing.T, stem string) *Document {
	t.Helper()

	data := f.bytes(t)
	doc, err := Read(bytes.NewReader(data), int64(len(data)), stem)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	return doc
}

func (f docxFixture) writeFile(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, f.bytes(t), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func buildZip(t *testing.T, parts map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// XML builders for document content.

func para(style string, runs ...string) string {
	pPr := ""
	if style != "" {
		pPr = `<w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>`
	}
	return `<w:p>` + pPr + strings.Join(runs, "") + `</w:p>`
}

func listPara(style string, ilvl string, runs ...string) string {
	return `<w:p><w:pPr><w:pStyle w:val="` + style + `"/>` +
		`<w:numPr><w:ilvl w:val="` + ilvl + `"/><w:numId w:val="1"/></w:numPr></w:pPr>` +
		strings.Join(runs, "") + `</w:p>`
}

func run(text string) string {
	return `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

func boldRun(text string) string {
	return `<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

func italicRun(text string) string {
	return `<w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

func hyperlink(id, text string) string {
	return `<w:hyperlink r:id="` + id + `">` + run(text) + `</w:hyperlink>`
}

func drawing(id, descr string) string {
	return `<w:r><w:drawing><wp:inline><wp:docPr id="1" name="Picture" descr="` + descr + `"/>` +
		`<a:graphic><a:graphicData><pic:pic><pic:blipFill><a:blip r:embed="` + id + `"/>` +
		`</pic:blipFill></pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`
}

func table(rows ...[]string) string {
	var b strings.Builder
	b.WriteString(`<w:tbl>`)
	for _, row := range rows {
		b.WriteString(`<w:tr>`)
		for _, cell := range row {
			b.WriteString(`<w:tc>` + para("", run(cell)) + `</w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)
	return b.String()
}

func rel(id, typ, target string, external bool) string {
	mode := ""
	if external {
		mode = ` TargetMode="External"`
	}
	return `<Relationship Id="` + id + `" Type="` + typ + `" Target="` + target + `"` + mode + `/>`
}

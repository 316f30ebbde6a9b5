package docx2md

import (
	"fmt"
	"path/filepath"

	"github.com/alnah/go-docx2md/internal/fileutil"
)

// Written lists the files WriteOutput produced.
type Written struct {
	Dir      string // <out>/<stem>
	Markdown string
	HTML     string   // empty unless the result has HTML
	PDF      string   // empty unless the result has a PDF
	Images   []string // one path per distinct image file
}

// OutputDir returns the directory a document's outputs go to.
func OutputDir(outDir, stem string) string {
	return filepath.Join(outDir, stem)
}

// WriteImages writes images under <out>/<stem>/<imageDir>. Images sharing
// a filename are written once. Unreferenced images are written too.
func WriteImages(outDir, stem, imageDir string, images []ImageInfo) ([]string, error) {
	dir := filepath.Join(OutputDir(outDir, stem), filepath.FromSlash(imageDir))

	var paths []string
	seen := make(map[string]bool, len(images))
	for _, img := range images {
		if seen[img.Filename] {
			continue
		}
		seen[img.Filename] = true

		p := filepath.Join(dir, filepath.Base(img.Filename))
		if err := fileutil.WriteFile(p, img.Content); err != nil {
			return paths, fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// WriteDocument writes the markdown as <out>/<stem>/<stem>.md, with the
// preview and PDF next to it when the result carries them.
func WriteDocument(outDir, stem string, res *Result) (*Written, error) {
	w := &Written{Dir: OutputDir(outDir, stem)}

	files := []struct {
		ext  string
		data []byte
		dst  *string
	}{
		{".md", []byte(res.Markdown), &w.Markdown},
		{".html", res.HTML, &w.HTML},
		{".pdf", res.PDF, &w.PDF},
	}
	for _, f := range files {
		if f.data == nil {
			continue
		}
		p := filepath.Join(w.Dir, stem+f.ext)
		if err := fileutil.WriteFile(p, f.data); err != nil {
			return w, fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
		*f.dst = p
	}
	return w, nil
}

// WriteOutput stores res under <out>/<stem>/: images first, then the
// markdown and the optional preview and PDF.
func WriteOutput(outDir, stem, imageDir string, res *Result) (*Written, error) {
	images, err := WriteImages(outDir, stem, imageDir, res.Images)
	if err != nil {
		return &Written{Dir: OutputDir(outDir, stem), Images: images}, err
	}

	w, err := WriteDocument(outDir, stem, res)
	w.Images = images
	return w, err
}

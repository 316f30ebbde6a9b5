package pipeline

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// DefaultImageDir is the directory image references point into.
const DefaultImageDir = "images"

// defaultAltText replaces an empty alt text in resolved images.
const defaultAltText = "Image"

// Placeholder patterns produced by the upstream converter.
var (
	// Embedded image without a resolved path: ![alt](data:image/png;...)
	imagePlaceholder = regexp.MustCompile(`!\[([^\]]*)\]\(data:image[^)]*\)`)

	// Hyperlink keyed by relationship id: [text](rel="rId7")
	linkPlaceholder = regexp.MustCompile(`\[([^\]]*)\]\(rel="([^"]*)"\)`)
)

// ImageRef is the part of an extracted image the resolver needs.
type ImageRef struct {
	Filename string
}

// ImageResolution summarizes one image resolution pass.
type ImageResolution struct {
	Resolved   int
	Unresolved []int // 1-based placeholder positions left unresolved
	Unused     []string
}

// UnresolvedImageTarget is the link target of a placeholder that had no
// image left to bind to.
func UnresolvedImageTarget(n int) string {
	return fmt.Sprintf("#unresolved-image-%d", n)
}

// ResolveImages binds image placeholders to images by position: the Nth
// placeholder in document order references the Nth image under dir.
// Excess placeholders get an explicit unresolved target; excess images are
// reported as unused.
func ResolveImages(content string, images []ImageRef, dir string) (string, ImageResolution) {
	var res ImageResolution
	matches := imagePlaceholder.FindAllStringSubmatchIndex(content, -1)

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for i, m := range matches {
		b.WriteString(content[last:m[0]])
		last = m[1]

		alt := content[m[2]:m[3]]
		if alt == "" {
			alt = defaultAltText
		}

		if i < len(images) {
			fmt.Fprintf(&b, "![%s](%s)", alt, path.Join(dir, images[i].Filename))
			res.Resolved++
			continue
		}
		n := i + 1
		fmt.Fprintf(&b, "![%s](%s)", alt, UnresolvedImageTarget(n))
		res.Unresolved = append(res.Unresolved, n)
	}
	b.WriteString(content[last:])

	for _, img := range images[min(len(matches), len(images)):] {
		res.Unused = append(res.Unused, img.Filename)
	}
	return b.String(), res
}

// LinkResolution summarizes one link resolution pass.
type LinkResolution struct {
	Resolved int
	Unknown  []string // ids absent from the map, in first-seen order
}

// ResolveLinks replaces every link placeholder whose relationship id is in
// targets with a hyperlink to the mapped URL. All occurrences of an id
// resolve to the same URL. Unknown ids are left untouched.
func ResolveLinks(content string, targets map[string]string) (string, LinkResolution) {
	var res LinkResolution
	seen := make(map[string]bool)

	out := linkPlaceholder.ReplaceAllStringFunc(content, func(match string) string {
		sub := linkPlaceholder.FindStringSubmatch(match)
		text, id := sub[1], sub[2]

		url, ok := targets[id]
		if !ok {
			if !seen[id] {
				seen[id] = true
				res.Unknown = append(res.Unknown, id)
			}
			return match
		}
		res.Resolved++
		return "[" + text + "](" + url + ")"
	})
	return out, res
}

package docx

import (
	"path"
	"strings"
)

var extensionTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"svg":  "image/svg+xml",
	"webp": "image/webp",
	"emf":  "image/x-emf",
	"wmf":  "image/x-wmf",
}

var typeExtensions = map[string]string{
	"image/svg+xml": "svg",
	"image/x-emf":   "emf",
	"image/x-wmf":   "wmf",
}

// imageContentType returns the declared type when it is an image type, or
// one derived from the part's extension.
func imageContentType(declared, part string) string {
	if strings.HasPrefix(declared, "image/") {
		return declared
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(part), "."))
	if ct, ok := extensionTypes[ext]; ok {
		return ct
	}
	if ext != "" {
		return "image/" + ext
	}
	return "image/unknown"
}

// imageExtension names the file extension for an extracted image: the
// subtype of its content type, with a few vendor types mapped to their
// usual extension.
func imageExtension(contentType, part string) string {
	if ext, ok := typeExtensions[contentType]; ok {
		return ext
	}
	if _, sub, ok := strings.Cut(contentType, "/"); ok && sub != "" && sub != "unknown" {
		return sub
	}
	if ext := strings.TrimPrefix(path.Ext(part), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return "bin"
}

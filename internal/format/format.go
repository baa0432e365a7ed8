// Package format decides file extensions for downloaded pages and for the
// assembled chapter document.
package format

import (
	"net/url"
	"path"
	"strings"
)

const (
	JPG  = ".jpg"
	PNG  = ".png"
	WEBP = ".webp"
)

var extSynonyms = map[string]string{
	".jpg":  JPG,
	".jpeg": JPG,
	".png":  PNG,
	".webp": WEBP,
	".wepb": WEBP, // misspelled variant served by some mirrors
}

var mediaTypes = map[string]string{
	"image/jpeg": JPG,
	"image/jpg":  JPG,
	"image/png":  PNG,
	"image/webp": WEBP,
}

// Classify returns the extension a page should be saved with. The URL path
// suffix is trusted first, then the declared Content-Type; anything else
// falls back to .jpg.
func Classify(resourceURL, contentType string) string {
	if ext, ok := extSynonyms[urlExt(resourceURL)]; ok {
		return ext
	}

	mt, _, _ := strings.Cut(contentType, ";")
	if ext, ok := mediaTypes[strings.ToLower(strings.TrimSpace(mt))]; ok {
		return ext
	}

	return JPG
}

func urlExt(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}

	return strings.ToLower(path.Ext(p))
}

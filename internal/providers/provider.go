package providers

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMarkerNotFound = errors.New("page list not found, the site format may have changed")
	ErrNoResources    = errors.New("no image links found in the page list")
)

// Descriptor references one page image of a chapter before it is fetched.
// Index is 1-based and defines the final page order.
type Descriptor struct {
	Index   int
	BaseURL string
	Path    string
}

// URL returns the absolute address of the page image. An absolute Path wins
// over BaseURL; otherwise the two are concatenated the same way the reader
// page builds its CDN links.
func (d Descriptor) URL() string {
	if strings.HasPrefix(d.Path, "http://") || strings.HasPrefix(d.Path, "https://") {
		return d.Path
	}

	return d.BaseURL + d.Path
}

// Extractor turns the raw content of a chapter page into an ordered list of
// page descriptors.
type Extractor interface {
	Name() string
	Extract(raw string) ([]Descriptor, error)
}

type ExtractionError struct {
	Provider string
	Kind     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Kind)
}

func (e *ExtractionError) Unwrap() error {
	return e.Kind
}

// Number assigns contiguous 1-based indices in slice order.
func Number(descs []Descriptor) []Descriptor {
	for i := range descs {
		descs[i].Index = i + 1
	}

	return descs
}

// Package readmanga extracts page images from reader pages that bootstrap
// their viewer with an inline rm_h.readerInit(...) call.
package readmanga

import (
	"regexp"

	"github.com/brogergvhs/chapterdl/internal/providers"
)

const Name = "readmanga"

var (
	// rm_h.readerInit(<first arg>, [[ ... ]], ...)
	reReaderInit = regexp.MustCompile(`(?s)rm_h\.readerInit\([^,]+,\s*(\[\s*\[.*?\]\s*\])`)

	// ['https://cdn/', '<label>', "path/001.jpg"]
	rePageEntry = regexp.MustCompile(`(?s)\[\s*'(https?://[^']+)'\s*,\s*(?:'[^']*'|"[^"]*")\s*,\s*(?:"([^"]+)"|'([^']+)')`)
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func init() {
	providers.Register(Name, func(string) providers.Extractor { return New() })
}

func (e *Extractor) Name() string {
	return Name
}

func (e *Extractor) Extract(raw string) ([]providers.Descriptor, error) {
	m := reReaderInit.FindStringSubmatch(raw)
	if m == nil {
		return nil, &providers.ExtractionError{Provider: Name, Kind: providers.ErrMarkerNotFound}
	}

	entries := rePageEntry.FindAllStringSubmatch(m[1], -1)
	if len(entries) == 0 {
		return nil, &providers.ExtractionError{Provider: Name, Kind: providers.ErrNoResources}
	}

	out := make([]providers.Descriptor, 0, len(entries))
	for _, e := range entries {
		path := e[2]
		if path == "" {
			path = e[3]
		}

		out = append(out, providers.Descriptor{
			BaseURL: e[1],
			Path:    path,
		})
	}

	return providers.Number(out), nil
}

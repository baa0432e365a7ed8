package generic

import (
	"fmt"
	"strings"

	"github.com/brogergvhs/chapterdl/internal/providers"

	"github.com/PuerkitoBio/goquery"
)

const Name = "generic"

type Extractor struct {
	pageURL string
}

func New(pageURL string) *Extractor {
	return &Extractor{pageURL: pageURL}
}

func init() {
	providers.Register(Name, func(pageURL string) providers.Extractor { return New(pageURL) })
}

func (e *Extractor) Name() string {
	return Name
}

func (e *Extractor) Extract(raw string) ([]providers.Descriptor, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, &providers.ExtractionError{
			Provider: Name,
			Kind:     fmt.Errorf("%w: %v", providers.ErrMarkerNotFound, err),
		}
	}

	if doc.Find("img, script").Length() == 0 {
		return nil, &providers.ExtractionError{Provider: Name, Kind: providers.ErrMarkerNotFound}
	}

	col := newImageCollector(e.pageURL)
	if col.ScanIMGTags(doc) == 0 && col.ScanScripts(doc) == 0 {
		return nil, &providers.ExtractionError{Provider: Name, Kind: providers.ErrNoResources}
	}

	out := make([]providers.Descriptor, len(col.urls))
	for i, u := range col.urls {
		out[i] = providers.Descriptor{Path: u}
	}

	return providers.Number(out), nil
}

package downloader

import (
	"sort"

	"github.com/brogergvhs/chapterdl/internal/document"
)

// Collation splits fetch results into failures, kept in completion order
// for the log, and successes, sorted by page index for assembly.
type Collation struct {
	Failures  []string
	Successes []Result
}

func Collate(results []Result) Collation {
	c := Collation{
		Failures:  make([]string, 0),
		Successes: make([]Result, 0, len(results)),
	}

	for _, r := range results {
		if !r.OK() {
			c.Failures = append(c.Failures, r.Failure())
			continue
		}
		c.Successes = append(c.Successes, r)
	}

	sort.SliceStable(c.Successes, func(i, j int) bool {
		return c.Successes[i].Index < c.Successes[j].Index
	})

	return c
}

func (c Collation) Pages() []document.Page {
	pages := make([]document.Page, len(c.Successes))
	for i, r := range c.Successes {
		pages[i] = document.Page{Index: r.Index, Path: r.Path, Data: r.Data}
	}

	return pages
}

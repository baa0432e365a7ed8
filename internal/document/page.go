// Package document turns an ordered list of downloaded pages into a single
// chapter file, either a PDF or a CBZ archive.
package document

import (
	"fmt"
	"os"
)

// Page is one image of the chapter. Exactly one of Path and Data is set.
type Page struct {
	Index int
	Path  string
	Data  []byte
}

// Identifier names the page in error messages.
func (p Page) Identifier() string {
	if p.Path != "" {
		return p.Path
	}

	return fmt.Sprintf("page #%03d", p.Index)
}

func (p Page) bytes() ([]byte, error) {
	if p.Path == "" {
		return p.Data, nil
	}

	return os.ReadFile(p.Path)
}

package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Document is the container format of the assembled chapter.
type Document string

const (
	PDF Document = "pdf"
	CBZ Document = "cbz"
)

const DefaultDocumentName = "chapter.pdf"

func ParseDocument(s string) (Document, error) {
	switch Document(strings.ToLower(strings.TrimSpace(s))) {
	case "", PDF:
		return PDF, nil
	case CBZ:
		return CBZ, nil
	}

	return "", fmt.Errorf("unsupported document format %q (use pdf or cbz)", s)
}

func (d Document) Ext() string {
	return "." + string(d)
}

// DocumentName reduces name to a bare file name and makes sure it carries
// the suffix of d. The check is case-insensitive, so "Vol1.PDF" is kept.
func DocumentName(name string, d Document) string {
	name = strings.TrimSpace(filepath.Base(filepath.Clean("/" + name)))
	if name == "" || name == "/" || name == "." {
		name = strings.TrimSuffix(DefaultDocumentName, PDF.Ext())
	}

	if !strings.HasSuffix(strings.ToLower(name), d.Ext()) {
		name += d.Ext()
	}

	return name
}

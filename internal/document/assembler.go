package document

import (
	"fmt"
	"io"

	"github.com/brogergvhs/chapterdl/internal/format"
	"github.com/brogergvhs/chapterdl/internal/util"
)

type pageWriter interface {
	add(pos int, img rgbPage) error
	close() error
}

type Assembler struct {
	format format.Document
	onPage func(pos, total int, p Page)
}

type Option func(*Assembler)

// WithProgress registers a callback invoked after each page is written.
// pos is 1-based.
func WithProgress(fn func(pos, total int, p Page)) Option {
	return func(a *Assembler) {
		a.onPage = fn
	}
}

func NewAssembler(f format.Document, opts ...Option) *Assembler {
	a := &Assembler{format: f}
	for _, o := range opts {
		o(a)
	}

	return a
}

func (a *Assembler) Format() format.Document {
	return a.format
}

// Assemble writes pages, in the given order, into outputPath. The file
// appears only once every page has been written; on failure nothing is left
// behind.
func (a *Assembler) Assemble(pages []Page, outputPath string) error {
	if len(pages) == 0 {
		return ErrNoPages
	}

	newWriter, err := a.writerFor()
	if err != nil {
		return err
	}

	return util.WriteAtomic(outputPath, func(w io.Writer) error {
		out := newWriter(w)

		for i, p := range pages {
			img, err := load(p)
			if err != nil {
				return err
			}

			if err := out.add(i+1, img); err != nil {
				return fmt.Errorf("%s: add %s: %w", a.format, p.Identifier(), err)
			}

			if a.onPage != nil {
				a.onPage(i+1, len(pages), p)
			}
		}

		if err := out.close(); err != nil {
			return fmt.Errorf("%s: write %s: %w", a.format, outputPath, err)
		}

		return nil
	})
}

func (a *Assembler) writerFor() (func(io.Writer) pageWriter, error) {
	switch a.format {
	case format.PDF:
		return func(w io.Writer) pageWriter { return newPDFWriter(w) }, nil
	case format.CBZ:
		return func(w io.Writer) pageWriter { return newCBZWriter(w) }, nil
	default:
		return nil, fmt.Errorf("unsupported document format %q", a.format)
	}
}

func load(p Page) (rgbPage, error) {
	raw, err := p.bytes()
	if err != nil {
		return rgbPage{}, &UnreadableImageError{Identifier: p.Identifier(), Err: err}
	}

	img, err := normalize(raw)
	if err != nil {
		return rgbPage{}, &UnreadableImageError{Identifier: p.Identifier(), Err: err}
	}

	return img, nil
}

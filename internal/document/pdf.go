package document

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Pages are laid out at 100 DPI.
const pointsPerPixel = 72.0 / 100.0

type pdfWriter struct {
	w   io.Writer
	pdf *gofpdf.Fpdf
}

func newPDFWriter(w io.Writer) *pdfWriter {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("chapterdl", false)

	return &pdfWriter{w: w, pdf: pdf}
}

func (p *pdfWriter) add(pos int, img rgbPage) error {
	wd := float64(img.width) * pointsPerPixel
	ht := float64(img.height) * pointsPerPixel
	name := fmt.Sprintf("page-%03d", pos)
	opts := gofpdf.ImageOptions{ImageType: "JPG"}

	p.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: wd, Ht: ht})
	p.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.data))
	p.pdf.ImageOptions(name, 0, 0, wd, ht, false, opts, 0, "")

	return p.pdf.Error()
}

func (p *pdfWriter) close() error {
	return p.pdf.Output(p.w)
}

package document

import (
	"bytes"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 90

// rgbPage is a page ready for embedding: a 3-channel baseline JPEG and its
// pixel size.
type rgbPage struct {
	data          []byte
	width, height int
}

func normalize(raw []byte) (rgbPage, error) {
	img, kind, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return rgbPage{}, err
	}

	b := img.Bounds()
	if b.Empty() {
		return rgbPage{}, image.ErrFormat
	}

	if _, ok := img.(*image.YCbCr); ok && kind == "jpeg" {
		return rgbPage{data: raw, width: b.Dx(), height: b.Dy()}, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return rgbPage{}, err
	}

	return rgbPage{data: buf.Bytes(), width: b.Dx(), height: b.Dy()}, nil
}

// flatten draws src onto an opaque canvas anchored at the origin.
// Transparent areas become white.
func flatten(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if hasAlpha(src) {
		draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
		return dst
	}

	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	return dst
}

func hasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64, *image.Alpha, *image.Alpha16, *image.NYCbCrA:
		return true
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	case interface{ Opaque() bool }:
		return !m.Opaque()
	}

	return false
}

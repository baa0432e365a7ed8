package document

import (
	"archive/zip"
	"fmt"
	"io"
	"time"
)

type cbzWriter struct {
	z   *zip.Writer
	now time.Time
}

func newCBZWriter(w io.Writer) *cbzWriter {
	return &cbzWriter{z: zip.NewWriter(w), now: time.Now()}
}

func (c *cbzWriter) add(pos int, img rgbPage) error {
	header := &zip.FileHeader{
		Name:     fmt.Sprintf("%03d.jpg", pos),
		Method:   zip.Deflate,
		Modified: c.now,
	}

	w, err := c.z.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = w.Write(img.data)

	return err
}

func (c *cbzWriter) close() error {
	return c.z.Close()
}

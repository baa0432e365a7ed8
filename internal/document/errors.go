package document

import (
	"errors"
	"fmt"
)

var ErrNoPages = errors.New("no pages to assemble")

// UnreadableImageError reports a page whose bytes could not be read or
// decoded as an image.
type UnreadableImageError struct {
	Identifier string
	Err        error
}

func (e *UnreadableImageError) Error() string {
	return fmt.Sprintf("unreadable image %s: %v", e.Identifier, e.Err)
}

func (e *UnreadableImageError) Unwrap() error {
	return e.Err
}

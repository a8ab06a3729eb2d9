// Package share provides the system clipboard as the summary copy target.
package share

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

var ErrUnavailable = errors.New("clipboard is not available on this system")

// Clipboard writes to the system clipboard.
type Clipboard struct{}

func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Available reports whether a clipboard utility was found.
func (c *Clipboard) Available() bool {
	return !clipboard.Unsupported
}

func (c *Clipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

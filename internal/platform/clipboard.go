package platform

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported is returned when no clipboard utility is available
// (for example a headless Linux box without xclip, xsel or wl-clipboard).
var ErrClipboardUnsupported = errors.New("clipboard unsupported on this system")

// Clipboard is the shared system clipboard.
type Clipboard struct{}

// ReadText returns the clipboard's text content.
func (Clipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnsupported
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// WriteText replaces the clipboard's content with text.
func (Clipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

package platform

import (
	"errors"

	"github.com/atotto/clipboard"

	"github.com/doeshing/saurus-go/internal/ports"
)

// ErrClipboardUnsupported is returned when no clipboard utility is available.
var ErrClipboardUnsupported = errors.New("clipboard not supported on this system")

// Clipboard implements ports.Clipboard on top of the system pasteboard.
type Clipboard struct {
	unsupported bool
	read        func() (string, error)
	write       func(string) error
}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{
		unsupported: clipboard.Unsupported,
		read:        clipboard.ReadAll,
		write:       clipboard.WriteAll,
	}
}

// Enabled reports whether a clipboard utility is available.
func (c *Clipboard) Enabled() bool {
	return !c.unsupported
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if c.unsupported {
		return ErrClipboardUnsupported
	}
	return c.write(text)
}

// ReadText returns the clipboard's current text.
func (c *Clipboard) ReadText() (string, error) {
	if c.unsupported {
		return "", ErrClipboardUnsupported
	}
	return c.read()
}

var _ ports.Clipboard = (*Clipboard)(nil)

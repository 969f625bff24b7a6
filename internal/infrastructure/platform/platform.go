// Package platform bridges the host desktop: clipboard access and global
// hotkeys.
package platform

import (
	"github.com/doeshing/saurus-go/internal/ports"
)

// Desktop implements ports.Platform with the system clipboard and
// trigger-file hotkeys.
type Desktop struct {
	clipboard *Clipboard
	triggers  *TriggerWatcher
}

// NewDesktop builds the platform bridge; hotkey triggers live in triggerDir.
func NewDesktop(clipboard *Clipboard, triggerDir string, logger ports.Logger) *Desktop {
	return &Desktop{clipboard: clipboard, triggers: NewTriggerWatcher(triggerDir, logger)}
}

// RegisterHotkey runs callback each time combo's trigger file appears.
func (d *Desktop) RegisterHotkey(combo string, callback func()) error {
	return d.triggers.Register(combo, callback)
}

// ReadClipboardText returns the clipboard's current text.
func (d *Desktop) ReadClipboardText() (string, error) {
	return d.clipboard.ReadText()
}

// Close stops watching for triggers.
func (d *Desktop) Close() error {
	return d.triggers.Close()
}

var _ ports.Platform = (*Desktop)(nil)

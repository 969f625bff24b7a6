package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// pasteDelay gives the clipboard owner time to publish before the keystroke.
const pasteDelay = 150 * time.Millisecond

const pasteScript = `tell application "System Events" to keystroke "v" using command down`

// ErrPasteUnsupported is returned when no keystroke tool is available.
var ErrPasteUnsupported = errors.New("paste into the focused app is not supported on this system")

// Paster puts text into the focused application: it copies the text and then
// sends the platform paste shortcut.
type Paster struct {
	clipboard *Clipboard
	goos      string
	run       func(ctx context.Context, name string, args ...string) error
	lookPath  func(string) (string, error)
	sleep     func(time.Duration)
}

// NewPaster builds a Paster over clipboard.
func NewPaster(clipboard *Clipboard) *Paster {
	return &Paster{
		clipboard: clipboard,
		goos:      runtime.GOOS,
		run:       runTool,
		lookPath:  exec.LookPath,
		sleep:     time.Sleep,
	}
}

// Paste copies text and presses Cmd+V (macOS) or Ctrl+V via xdotool (Linux).
func (p *Paster) Paste(ctx context.Context, text string) error {
	if err := p.clipboard.Copy(text); err != nil {
		return fmt.Errorf("copy answer: %w", err)
	}
	p.sleep(pasteDelay)

	switch p.goos {
	case "darwin":
		if err := p.run(ctx, "osascript", "-e", pasteScript); err != nil {
			return fmt.Errorf("osascript: %w", err)
		}
		return nil
	case "linux":
		if _, err := p.lookPath("xdotool"); err != nil {
			return ErrPasteUnsupported
		}
		if err := p.run(ctx, "xdotool", "key", "--clearmodifiers", "ctrl+v"); err != nil {
			return fmt.Errorf("xdotool: %w", err)
		}
		return nil
	default:
		return ErrPasteUnsupported
	}
}

func runTool(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

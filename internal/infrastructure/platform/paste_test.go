package platform

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type keystrokeRecorder struct {
	calls     []string
	installed map[string]bool
	err       error
}

func (k *keystrokeRecorder) run(_ context.Context, name string, args ...string) error {
	k.calls = append(k.calls, name+" "+strings.Join(args, " "))
	return k.err
}

func (k *keystrokeRecorder) lookPath(name string) (string, error) {
	if k.installed[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("not found")
}

func newTestPaster(goos string, keys *keystrokeRecorder, copied *string) *Paster {
	clip := &Clipboard{write: func(s string) error { *copied = s; return nil }}
	p := NewPaster(clip)
	p.goos = goos
	p.run = keys.run
	p.lookPath = keys.lookPath
	p.sleep = func(time.Duration) {}
	return p
}

func TestPasterSendsPlatformShortcut(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		keys     *keystrokeRecorder
		wantCall string
		wantErr  error
	}{
		{name: "macOS", goos: "darwin", keys: &keystrokeRecorder{}, wantCall: "osascript -e " + pasteScript},
		{name: "linux xdotool", goos: "linux", keys: &keystrokeRecorder{installed: map[string]bool{"xdotool": true}}, wantCall: "xdotool key --clearmodifiers ctrl+v"},
		{name: "linux without xdotool", goos: "linux", keys: &keystrokeRecorder{}, wantErr: ErrPasteUnsupported},
		{name: "other os", goos: "plan9", keys: &keystrokeRecorder{}, wantErr: ErrPasteUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var copied string
			err := newTestPaster(tt.goos, tt.keys, &copied).Paste(context.Background(), "the answer")
			if copied != "the answer" {
				t.Fatalf("clipboard = %q, want the answer copied first", copied)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Paste() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Paste() error = %v", err)
			}
			if len(tt.keys.calls) != 1 || tt.keys.calls[0] != tt.wantCall {
				t.Fatalf("calls = %q, want %q", tt.keys.calls, tt.wantCall)
			}
		})
	}
}

func TestPasterStopsWhenCopyFails(t *testing.T) {
	keys := &keystrokeRecorder{}
	p := NewPaster(&Clipboard{unsupported: true})
	p.run = keys.run
	p.sleep = func(time.Duration) {}
	if err := p.Paste(context.Background(), "x"); !errors.Is(err, ErrClipboardUnsupported) {
		t.Fatalf("Paste() error = %v", err)
	}
	if len(keys.calls) != 0 {
		t.Fatalf("keystroke sent without a copy: %q", keys.calls)
	}
}

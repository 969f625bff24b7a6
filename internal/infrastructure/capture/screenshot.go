// Package capture takes screenshots with the platform's screenshot tool.
package capture

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/ports"
)

// commandRunner runs a tool and returns its stdout.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ScreenshotProvider implements ports.CaptureProvider with screencapture on
// macOS and grim/scrot/gnome-screenshot on Linux.
type ScreenshotProvider struct {
	dir      string
	goos     string
	run      commandRunner
	lookPath func(string) (string, error)
	logger   ports.Logger
}

// NewScreenshotProvider writes captures into the OS temp directory.
func NewScreenshotProvider(logger ports.Logger) *ScreenshotProvider {
	return &ScreenshotProvider{
		dir:      os.TempDir(),
		goos:     runtime.GOOS,
		run:      runCommand,
		lookPath: exec.LookPath,
		logger:   logger,
	}
}

// Capture implements ports.CaptureProvider. The returned file belongs to the
// caller, who must delete it.
func (p *ScreenshotProvider) Capture(ctx context.Context, mode domain.CaptureMode) (string, error) {
	if mode == "" || mode == domain.CaptureNone {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, domain.DefaultCaptureTimeout)
	defer cancel()

	path := filepath.Join(p.dir, "saurus-"+uuid.NewString()+".jpg")

	var err error
	switch p.goos {
	case "darwin":
		err = p.captureDarwin(ctx, mode, path)
	case "linux":
		err = p.captureLinux(ctx, mode, path)
	default:
		err = fmt.Errorf("screen capture not supported on %s", p.goos)
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}

	info, statErr := os.Stat(path)
	if statErr != nil || info.Size() == 0 {
		_ = os.Remove(path)
		return "", fmt.Errorf("screenshot tool produced no image at %s", path)
	}

	p.logger.Debug("screenshot captured", map[string]interface{}{"mode": string(mode), "path": path, "bytes": info.Size()})
	return path, nil
}

func (p *ScreenshotProvider) captureDarwin(ctx context.Context, mode domain.CaptureMode, path string) error {
	args := []string{"-x", "-t", "jpg"}
	if mode == domain.CaptureWindow {
		rect, err := p.frontWindowRect(ctx)
		if err != nil {
			return fmt.Errorf("locate focused window: %w", err)
		}
		args = append(args, "-R", rect)
	}
	args = append(args, path)
	if _, err := p.run(ctx, "screencapture", args...); err != nil {
		return fmt.Errorf("screencapture: %w", err)
	}
	return nil
}

const frontWindowScript = `tell application "System Events" to tell (first process whose frontmost is true) to get {position, size} of front window`

// frontWindowRect asks System Events for the frontmost window bounds and
// returns them as "x,y,w,h" for screencapture -R.
func (p *ScreenshotProvider) frontWindowRect(ctx context.Context) (string, error) {
	out, err := p.run(ctx, "osascript", "-e", frontWindowScript)
	if err != nil {
		return "", err
	}
	parts := strings.Split(strings.TrimSpace(string(out)), ",")
	if len(parts) != 4 {
		return "", fmt.Errorf("unexpected window bounds %q", strings.TrimSpace(string(out)))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ","), nil
}

type linuxTool struct {
	name string
	args func(path string) []string
}

var linuxDesktopTools = []linuxTool{
	{name: "grim", args: func(path string) []string { return []string{"-t", "jpeg", path} }},
	{name: "scrot", args: func(path string) []string { return []string{"-o", path} }},
	{name: "gnome-screenshot", args: func(path string) []string { return []string{"-f", path} }},
}

var linuxWindowTools = []linuxTool{
	{name: "scrot", args: func(path string) []string { return []string{"-u", "-o", path} }},
	{name: "gnome-screenshot", args: func(path string) []string { return []string{"-w", "-f", path} }},
}

func (p *ScreenshotProvider) captureLinux(ctx context.Context, mode domain.CaptureMode, path string) error {
	tools := linuxDesktopTools
	if mode == domain.CaptureWindow {
		tools = linuxWindowTools
	}
	for _, tool := range tools {
		if _, err := p.lookPath(tool.name); err != nil {
			continue
		}
		if _, err := p.run(ctx, tool.name, tool.args(path)...); err != nil {
			return fmt.Errorf("%s: %w", tool.name, err)
		}
		return nil
	}
	return fmt.Errorf("no screenshot tool found for %s capture", mode)
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.Bytes(), fmt.Errorf("%w: %s", err, msg)
		}
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}

var _ ports.CaptureProvider = (*ScreenshotProvider)(nil)

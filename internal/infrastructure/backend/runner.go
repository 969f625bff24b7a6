package backend

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/ports"
)

// Runner executes one BackendInvocation and classifies the outcome.
type Runner struct {
	launcher ports.ProcessLauncher
	logger   ports.Logger
	remove   func(string) error
}

// NewRunner wires a runner around launcher.
func NewRunner(launcher ports.ProcessLauncher, logger ports.Logger) *Runner {
	return &Runner{launcher: launcher, logger: logger, remove: os.Remove}
}

// Run implements ports.BackendRunner. It blocks until the subprocess exits,
// then deletes capturePath (if any) whatever the outcome.
func (r *Runner) Run(ctx context.Context, inv domain.BackendInvocation, capturePath string) (string, error) {
	defer r.discardCapture(capturePath)

	start := time.Now()
	out, err := r.launcher.Launch(ctx, inv)
	if err != nil {
		r.logger.Error("backend launch failed", err, map[string]interface{}{
			"executable": inv.Executable,
		})
		return "", &domain.AssistError{
			Kind:       domain.KindLaunchFailure,
			ExitCode:   domain.LaunchFailureCode,
			Diagnostic: err.Error(),
			Path:       inv.Executable,
			Err:        err,
		}
	}

	fields := map[string]interface{}{
		"exit_code":   out.ExitCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if out.ExitCode == 0 {
		r.logger.Debug("backend finished", fields)
		return strings.TrimSpace(string(out.Stdout)), nil
	}

	diagnostic := strings.TrimSpace(string(out.Stderr) + "\n" + string(out.Stdout))
	r.logger.Warn("backend exited with error", fields)
	return "", &domain.AssistError{
		Kind:       domain.KindNonZeroExit,
		ExitCode:   out.ExitCode,
		Diagnostic: diagnostic,
		Path:       inv.Executable,
	}
}

func (r *Runner) discardCapture(path string) {
	if path == "" {
		return
	}
	if err := r.remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.logger.Debug("capture cleanup failed", map[string]interface{}{"path": path, "error": err.Error()})
	}
}

var _ ports.BackendRunner = (*Runner)(nil)

package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/ports"
)

// ExecLauncher runs the backend with os/exec.
type ExecLauncher struct{}

// NewExecLauncher builds the default launcher.
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{}
}

// Launch implements ports.ProcessLauncher. Output is buffered and handed back
// only once the process has exited.
func (l *ExecLauncher) Launch(ctx context.Context, inv domain.BackendInvocation) (domain.ProcessOutput, error) {
	c := exec.CommandContext(ctx, inv.Executable, inv.Argv()...)
	c.Dir = inv.Dir
	c.Env = inv.Env

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Start(); err != nil {
		return domain.ProcessOutput{ExitCode: domain.LaunchFailureCode}, err
	}

	err := c.Wait()
	out := domain.ProcessOutput{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		out.ExitCode = 0
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
		if out.ExitCode == 0 {
			out.ExitCode = domain.LaunchFailureCode
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			out.Stderr = appendLine(out.Stderr, fmt.Sprintf("backend interrupted: %v", ctxErr))
		}
	default:
		out.ExitCode = domain.LaunchFailureCode
		out.Stderr = appendLine(out.Stderr, err.Error())
	}
	return out, nil
}

func appendLine(buf []byte, line string) []byte {
	if len(buf) > 0 && buf[len(buf)-1] != '\n' {
		buf = append(buf, '\n')
	}
	return append(buf, line...)
}

var _ ports.ProcessLauncher = (*ExecLauncher)(nil)

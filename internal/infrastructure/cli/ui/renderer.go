// Package ui renders assistant output for the terminal.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/doeshing/saurus-go/internal/application/session"
	"github.com/doeshing/saurus-go/internal/domain"
)

// RenderAnswer prints the backend's answer.
func RenderAnswer(out io.Writer, text string) {
	fmt.Fprintln(out, text)
}

// RenderFailure prints the classified failure, its remediation and the raw
// diagnostic.
func RenderFailure(out io.Writer, err error) {
	category := domain.ClassifyError(err)
	fmt.Fprintf(out, "Request failed (%s)\n", category)
	fmt.Fprintf(out, "  %s\n", category.Message())
	if diag := domain.DiagnosticOf(err); diag != "" {
		fmt.Fprintln(out, "\nDetails:")
		for _, line := range strings.Split(diag, "\n") {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
}

// RenderHealthReport prints one line per doctor check.
func RenderHealthReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n", strings.ToUpper(string(check.Status)), check.Name, check.Details)
	}
}

// Preview shortens text to n runes on one line.
func Preview(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if n <= 0 || len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "…"
}

// PanelView prints what changed between consecutive session snapshots.
type PanelView struct {
	out     io.Writer
	spinner *Spinner
	last    session.State
	started bool
}

// NewPanelView renders panel updates to out.
func NewPanelView(out io.Writer) *PanelView {
	return &PanelView{out: out, spinner: NewSpinner(out, "thinking")}
}

// Render prints the delta from the previous snapshot.
func (v *PanelView) Render(st session.State) {
	prev := v.last
	v.last = st
	if !v.started {
		v.started = true
		fmt.Fprintf(v.out, "engine %s", st.Engine)
		if st.Engine.IsLocal() {
			fmt.Fprintf(v.out, " (%s)", st.LocalModel)
		}
		fmt.Fprintf(v.out, ", capture %s, %d history entries\n", st.CaptureMode, len(st.History))
		if !st.Onboarded {
			fmt.Fprintln(v.out, "Setup is not complete. Run `saurus onboard` first or type :help.")
		}
		return
	}

	if st.Engine != prev.Engine || st.LocalModel != prev.LocalModel || st.CaptureMode != prev.CaptureMode {
		fmt.Fprintf(v.out, "engine %s, model %s, capture %s\n", st.Engine, st.LocalModel, st.CaptureMode)
	}
	if st.Context != prev.Context {
		if st.Context == "" {
			fmt.Fprintln(v.out, "context cleared")
		} else {
			fmt.Fprintf(v.out, "context: %s\n", Preview(st.Context, domain.ContextPreviewLength))
		}
	}
	if st.Pending && !prev.Pending {
		v.spinner.Start()
	}
	if !st.Pending && prev.Pending {
		v.spinner.Stop()
		switch {
		case st.Err != nil:
			RenderFailure(v.out, st.Err)
		default:
			fmt.Fprintln(v.out)
			RenderAnswer(v.out, st.Response)
			fmt.Fprintln(v.out)
		}
	}
	if len(st.History) == 0 && len(prev.History) > 0 {
		fmt.Fprintln(v.out, "history cleared")
	}
}

// Close stops any running animation.
func (v *PanelView) Close() {
	v.spinner.Stop()
}

// IsBusy reports whether err is the session's busy rejection.
func IsBusy(err error) bool {
	return errors.Is(err, session.ErrBusy)
}

package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/doeshing/saurus-go/internal/domain"
)

func TestClassifyFailure(t *testing.T) {
	const python = "/opt/saurus/venv/bin/python"

	tests := []struct {
		name       string
		diagnostic string
		paths      []string
		want       domain.FailureCategory
	}{
		{
			name:       "missing module",
			diagnostic: "Traceback (most recent call last):\nModuleNotFoundError: foo",
			want:       domain.CategoryDependenciesMissing,
		},
		{
			name:       "no module named",
			diagnostic: "ImportError: No module named 'requests'",
			want:       domain.CategoryDependenciesMissing,
		},
		{
			name:       "api key env var",
			diagnostic: "GEMINI_API_KEY is not set",
			want:       domain.CategoryCredentialInvalid,
		},
		{
			name:       "api key phrase",
			diagnostic: "400 API key not valid. Please pass a valid API key.",
			want:       domain.CategoryCredentialInvalid,
		},
		{
			name:       "segfault falls through",
			diagnostic: "Segmentation fault",
			want:       domain.CategoryRequestFailed,
		},
		{
			name:       "missing file",
			diagnostic: "fork/exec: No such file or directory",
			want:       domain.CategoryBackendNotInstalled,
		},
		{
			name:       "backend path mentioned",
			diagnostic: "permission denied: /OPT/saurus/venv/bin/python",
			paths:      []string{python},
			want:       domain.CategoryBackendNotInstalled,
		},
		{
			name:       "path beats module marker",
			diagnostic: python + ": ModuleNotFoundError",
			paths:      []string{python},
			want:       domain.CategoryBackendNotInstalled,
		},
		{
			name:       "module beats api key",
			diagnostic: "ModuleNotFoundError: google.genai (needed for api key auth)",
			want:       domain.CategoryDependenciesMissing,
		},
		{
			name:       "empty diagnostic",
			diagnostic: "",
			paths:      []string{""},
			want:       domain.CategoryRequestFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.ClassifyFailure(tt.diagnostic, tt.paths...); got != tt.want {
				t.Errorf("ClassifyFailure() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFailureCategoryMessagesAreDistinct(t *testing.T) {
	seen := map[string]domain.FailureCategory{}
	for _, c := range []domain.FailureCategory{
		domain.CategoryBackendNotInstalled,
		domain.CategoryDependenciesMissing,
		domain.CategoryCredentialInvalid,
		domain.CategoryRequestFailed,
	} {
		msg := c.Message()
		if msg == "" {
			t.Fatalf("%s has no message", c)
		}
		if other, dup := seen[msg]; dup {
			t.Fatalf("%s and %s share a message", c, other)
		}
		seen[msg] = c
	}
	if domain.FailureCategory("bogus").Message() != domain.CategoryRequestFailed.Message() {
		t.Fatal("unknown category should fall back to generic message")
	}
}

func TestAssistErrorMatchesSentinelByKind(t *testing.T) {
	err := fmt.Errorf("ask: %w", &domain.AssistError{
		Kind:       domain.KindNonZeroExit,
		ExitCode:   2,
		Diagnostic: "boom",
	})

	if !errors.Is(err, domain.ErrNonZeroExit) {
		t.Fatal("expected errors.Is to match ErrNonZeroExit")
	}
	if errors.Is(err, domain.ErrLaunchFailure) {
		t.Fatal("did not expect ErrLaunchFailure match")
	}
	ae, ok := domain.AsAssistError(err)
	if !ok || ae.ExitCode != 2 {
		t.Fatalf("AsAssistError() = %+v, %v", ae, ok)
	}
	if domain.DiagnosticOf(err) != "boom" {
		t.Fatalf("DiagnosticOf() = %q", domain.DiagnosticOf(err))
	}
}

func TestClassifyErrorUsesPreflightPath(t *testing.T) {
	err := &domain.AssistError{
		Kind:       domain.KindPreflightNotFound,
		Path:       "/opt/saurus/backend.py",
		Diagnostic: "backend script not found at /opt/saurus/backend.py",
	}
	if got := domain.ClassifyError(err); got != domain.CategoryBackendNotInstalled {
		t.Fatalf("ClassifyError() = %s", got)
	}
	if got := domain.ClassifyError(errors.New("Gemini Error: API key not valid")); got != domain.CategoryCredentialInvalid {
		t.Fatalf("ClassifyError() = %s", got)
	}
}

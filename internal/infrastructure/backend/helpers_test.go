package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/saurus-go/internal/domain"
)

// writeFakeBackend lays out root/venv/bin/python as a shell script with body
// and an empty root/backend.py next to it.
func writeFakeBackend(t *testing.T, root, body string) domain.BackendPaths {
	t.Helper()
	exe := filepath.Join(root, domain.DefaultBackendExecutable)
	if err := os.MkdirAll(filepath.Dir(exe), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(root, domain.DefaultBackendScript)
	if err := os.WriteFile(script, []byte("# backend\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return domain.BackendPaths{Root: root, Executable: exe, Script: script}
}

func writeScriptOnly(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, domain.DefaultBackendScript), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
}

type spyLauncher struct {
	calls  int
	last   domain.BackendInvocation
	output domain.ProcessOutput
	err    error
}

func (s *spyLauncher) Launch(_ context.Context, inv domain.BackendInvocation) (domain.ProcessOutput, error) {
	s.calls++
	s.last = inv
	return s.output, s.err
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

func removeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

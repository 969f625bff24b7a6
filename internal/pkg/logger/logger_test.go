package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "saurus.log")
	l, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.Debug("capture skipped", map[string]interface{}{"mode": "none"})
	l.Error("backend launch failed", errors.New("boom"), nil)
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{`"msg":"capture skipped"`, `"mode":"none"`, `"error":"boom"`} {
		if !strings.Contains(text, want) {
			t.Errorf("log file missing %s:\n%s", want, text)
		}
	}
}

func TestLevelFiltersRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saurus.log")
	l, err := New(Options{Level: "warn", File: path})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden", nil)
	l.Warn("shown", nil)
	_ = l.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Fatalf("unexpected log contents: %s", data)
	}
}

func TestNewStdQuietIsSafe(t *testing.T) {
	l := NewStd(false)
	l.Info("nothing", map[string]interface{}{"k": 1})
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestNewUnwritableFileStillReturnsLogger(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	l, err := New(Options{Level: "info", File: filepath.Join(blocker, "saurus.log")})
	if err == nil {
		t.Fatal("expected an error for a log path under a regular file")
	}
	if l == nil {
		t.Fatal("expected a usable logger alongside the error")
	}
	l.Warn("still logging", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

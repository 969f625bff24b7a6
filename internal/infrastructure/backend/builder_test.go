package backend

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/saurus-go/internal/domain"
)

func newTestBuilder(env ...string) *Builder {
	b := NewBuilder(domain.Config{})
	b.environ = func() []string { return append([]string(nil), env...) }
	return b
}

func TestBuildArgumentVector(t *testing.T) {
	paths := domain.BackendPaths{Root: "/opt/saurus", Executable: "/opt/saurus/venv/bin/python", Script: "/opt/saurus/backend.py"}

	tests := []struct {
		name       string
		req        domain.PromptRequest
		screenshot string
		want       []string
	}{
		{
			name: "cloud engine without capture",
			req:  domain.PromptRequest{Prompt: "fix this", Context: "teh cat", Engine: domain.EngineGemini, LocalModel: "llava"},
			want: []string{"--prompt", "fix this", "--context", "teh cat", "--engine", "gemini"},
		},
		{
			name:       "cloud engine with capture",
			req:        domain.PromptRequest{Prompt: "what is this", Engine: domain.EngineGemini},
			screenshot: "/tmp/shot.jpg",
			want:       []string{"--prompt", "what is this", "--context", "", "--engine", "gemini", "--screenshot", "/tmp/shot.jpg"},
		},
		{
			name: "local engine always carries model",
			req:  domain.PromptRequest{Prompt: "hi", Engine: domain.EngineOllama, LocalModel: "llama3.2-vision"},
			want: []string{"--prompt", "hi", "--context", "", "--engine", "ollama", "--ollama-model", "llama3.2-vision"},
		},
		{
			name:       "local engine default model and capture",
			req:        domain.PromptRequest{Prompt: "hi", Engine: domain.EngineOllama},
			screenshot: "/tmp/a.jpg",
			want:       []string{"--prompt", "hi", "--context", "", "--engine", "ollama", "--ollama-model", "llava", "--screenshot", "/tmp/a.jpg"},
		},
		{
			name: "empty engine means cloud",
			req:  domain.PromptRequest{Prompt: "hi"},
			want: []string{"--prompt", "hi", "--context", "", "--engine", "gemini"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newTestBuilder().Build(paths, tt.req, tt.screenshot)
			if diff := cmp.Diff(tt.want, inv.Args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
			if inv.Dir != paths.Root {
				t.Errorf("Dir = %s, want %s", inv.Dir, paths.Root)
			}
			if inv.Argv()[0] != paths.Script {
				t.Errorf("argv[0] = %s, want script", inv.Argv()[0])
			}
			if tt.req.Engine != domain.EngineOllama && inv.HasFlag(domain.FlagOllamaModel) {
				t.Error("cloud engine must not pass --ollama-model")
			}
			if tt.screenshot == "" && inv.HasFlag(domain.FlagScreenshot) {
				t.Error("--screenshot must be omitted without a capture")
			}
		})
	}
}

func TestBuildEnvironment(t *testing.T) {
	paths := domain.BackendPaths{Root: "/r", Executable: "/r/venv/bin/python", Script: "/r/backend.py"}

	t.Run("overlays key and warnings", func(t *testing.T) {
		b := newTestBuilder("PATH=/usr/bin", "GEMINI_API_KEY=old", "PYTHONWARNINGS=default")
		inv := b.Build(paths, domain.PromptRequest{Prompt: "x", APIKey: "new"}, "")
		env := envMap(inv.Env)
		if env["GEMINI_API_KEY"] != "new" {
			t.Errorf("GEMINI_API_KEY = %q", env["GEMINI_API_KEY"])
		}
		if env["PYTHONWARNINGS"] != "ignore" {
			t.Errorf("PYTHONWARNINGS = %q", env["PYTHONWARNINGS"])
		}
		if env["PATH"] != "/usr/bin" {
			t.Errorf("PATH not inherited")
		}
		if countKey(inv.Env, "GEMINI_API_KEY") != 1 {
			t.Errorf("duplicate GEMINI_API_KEY entries: %v", inv.Env)
		}
	})

	t.Run("empty key never overwrites", func(t *testing.T) {
		b := newTestBuilder("GEMINI_API_KEY=from-env")
		inv := b.Build(paths, domain.PromptRequest{Prompt: "x", APIKey: "  "}, "")
		if got := envMap(inv.Env)["GEMINI_API_KEY"]; got != "from-env" {
			t.Errorf("GEMINI_API_KEY = %q, want inherited value", got)
		}
	})

	t.Run("absent key stays absent", func(t *testing.T) {
		inv := newTestBuilder("HOME=/home/u").Build(paths, domain.PromptRequest{Prompt: "x"}, "")
		if _, ok := envMap(inv.Env)["GEMINI_API_KEY"]; ok {
			t.Error("GEMINI_API_KEY should not be set")
		}
	})
}

func TestResolvePreflight(t *testing.T) {
	t.Run("both present", func(t *testing.T) {
		root := t.TempDir()
		writeFakeBackend(t, root, "exit 0")
		paths, err := newTestBuilder().Resolve(root, SourceEnv)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if paths.Script != filepath.Join(root, "backend.py") || paths.Source != SourceEnv {
			t.Fatalf("unexpected paths %+v", paths)
		}
	})

	t.Run("missing executable", func(t *testing.T) {
		root := t.TempDir()
		writeScriptOnly(t, root)
		_, err := newTestBuilder().Resolve(root, SourceFallback)
		if !errors.Is(err, domain.ErrPreflightNotFound) {
			t.Fatalf("expected preflight error, got %v", err)
		}
		if !strings.Contains(err.Error(), "runtime not found") {
			t.Fatalf("unexpected message %q", err)
		}
	})

	t.Run("missing script", func(t *testing.T) {
		root := t.TempDir()
		paths := writeFakeBackend(t, root, "exit 0")
		removeFile(t, paths.Script)
		_, err := newTestBuilder().Resolve(root, SourceFallback)
		ae, ok := domain.AsAssistError(err)
		if !ok || ae.Kind != domain.KindPreflightNotFound || ae.Path != paths.Script {
			t.Fatalf("expected script preflight error, got %v", err)
		}
		if !strings.Contains(err.Error(), "script not found") {
			t.Fatalf("unexpected message %q", err)
		}
	})
}

func TestMergeEnvOrder(t *testing.T) {
	got := mergeEnv([]string{"A=1", "B=2", "malformed"}, map[string]string{"B": "3", "Z": "9", "C": "4"})
	want := []string{"A=1", "malformed", "B=3", "C=4", "Z=9"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mergeEnv mismatch (-want +got):\n%s", diff)
	}
}

func envMap(env []string) map[string]string {
	m := map[string]string{}
	for _, kv := range env {
		k, v, _ := strings.Cut(kv, "=")
		m[k] = v
	}
	return m
}

func countKey(env []string, key string) int {
	n := 0
	for _, kv := range env {
		if strings.HasPrefix(kv, key+"=") {
			n++
		}
	}
	return n
}

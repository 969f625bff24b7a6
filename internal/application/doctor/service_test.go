package doctor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/infrastructure/preferences"
)

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubLocator struct{ root, source string }

func (s stubLocator) Locate() (string, string) { return s.root, s.source }

type stubBuilder struct{ err error }

func (b stubBuilder) Resolve(root, source string) (domain.BackendPaths, error) {
	return domain.BackendPaths{Root: root, Executable: root + "/venv/bin/python", Script: root + "/backend.py", Source: source}, b.err
}

func (stubBuilder) Build(domain.BackendPaths, domain.PromptRequest, string) domain.BackendInvocation {
	return domain.BackendInvocation{}
}

type stubModels struct {
	models []domain.LocalModel
	err    error
}

func (m stubModels) List(context.Context) ([]domain.LocalModel, error) { return m.models, m.err }
func (stubModels) Pull(context.Context, string, func(domain.PullProgress)) error {
	return nil
}

type stubVerifier struct {
	err  error
	keys []string
}

func (v *stubVerifier) Verify(_ context.Context, key string) error {
	v.keys = append(v.keys, key)
	return v.err
}

func statusOf(report domain.HealthReport, name string) domain.HealthStatus {
	for _, c := range report.Checks {
		if c.Name == name {
			return c.Status
		}
	}
	return ""
}

func newService(t *testing.T, prefs map[string]string) (*Service, *stubVerifier) {
	t.Helper()
	store := preferences.NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
	for k, v := range prefs {
		if err := store.Set(k, v); err != nil {
			t.Fatal(err)
		}
	}
	verifier := &stubVerifier{}
	return &Service{
		ConfigProvider: stubConfig{cfg: domain.Config{ConfigFormatVersion: "1"}},
		Locator:        stubLocator{root: "/opt/saurus", source: "env"},
		Builder:        stubBuilder{},
		Preferences:    store,
		Models:         stubModels{models: []domain.LocalModel{{Name: "llava:latest"}}},
		Verifier:       verifier,
		getenv:         func(string) string { return "" },
	}, verifier
}

func TestDoctorHealthySetup(t *testing.T) {
	svc, verifier := newService(t, map[string]string{"gemini_api_key": "abcd1234", "onboarding_complete": "true"})
	report, err := svc.Run(context.Background(), Options{Online: true})
	if err != nil {
		t.Fatal(err)
	}
	if report.Failed() != 0 {
		t.Fatalf("expected no failures, got %+v", report.Checks)
	}
	if len(verifier.keys) != 1 || verifier.keys[0] != "abcd1234" {
		t.Fatalf("verifier not called with saved key: %v", verifier.keys)
	}
}

func TestDoctorReportsProblems(t *testing.T) {
	tests := []struct {
		name   string
		prefs  map[string]string
		mutate func(*Service, *stubVerifier)
		opts   Options
		check  string
		want   domain.HealthStatus
	}{
		{
			name:   "missing backend",
			mutate: func(s *Service, _ *stubVerifier) { s.Builder = stubBuilder{err: errors.New("backend runtime not found")} },
			check:  "Backend files",
			want:   domain.HealthError,
		},
		{
			name:   "fallback location",
			mutate: func(s *Service, _ *stubVerifier) { s.Locator = stubLocator{root: "/tmp", source: domain.BackendSourceFallback} },
			check:  "Backend location",
			want:   domain.HealthWarn,
		},
		{
			name:  "gemini without key",
			check: "Gemini API key",
			want:  domain.HealthError,
		},
		{
			name:  "ollama engine without key only warns",
			prefs: map[string]string{"selected_engine": "ollama"},
			check: "Gemini API key",
			want:  domain.HealthWarn,
		},
		{
			name:   "rejected key online",
			prefs:  map[string]string{"gemini_api_key": "bad"},
			mutate: func(_ *Service, v *stubVerifier) { v.err = errors.New("API key not valid") },
			opts:   Options{Online: true},
			check:  "Gemini API key",
			want:   domain.HealthError,
		},
		{
			name:   "local model missing",
			prefs:  map[string]string{"selected_engine": "ollama", "ollama_model": "bakllava"},
			check:  "Ollama",
			want:   domain.HealthError,
			mutate: func(*Service, *stubVerifier) {},
		},
		{
			name:   "ollama down with cloud engine",
			prefs:  map[string]string{"gemini_api_key": "k"},
			mutate: func(s *Service, _ *stubVerifier) { s.Models = stubModels{err: errors.New("connection refused")} },
			check:  "Ollama",
			want:   domain.HealthWarn,
		},
		{
			name:   "invalid config",
			mutate: func(s *Service, _ *stubVerifier) { s.ConfigProvider = stubConfig{cfg: domain.Config{History: domain.HistorySettings{Limit: 99}}} },
			check:  "Config file",
			want:   domain.HealthError,
		},
		{
			name:  "onboarding pending",
			prefs: map[string]string{"gemini_api_key": "k"},
			check: "Preferences",
			want:  domain.HealthWarn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, verifier := newService(t, tt.prefs)
			if tt.mutate != nil {
				tt.mutate(svc, verifier)
			}
			report, err := svc.Run(context.Background(), tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if got := statusOf(report, tt.check); got != tt.want {
				t.Fatalf("%s status = %q, want %q (%+v)", tt.check, got, tt.want, report.Checks)
			}
		})
	}
}

func TestDoctorKeyFromEnvironmentOffline(t *testing.T) {
	svc, verifier := newService(t, nil)
	svc.getenv = func(key string) string {
		if key == domain.APIKeyEnvVar {
			return "env-key"
		}
		return ""
	}
	report, _ := svc.Run(context.Background(), Options{})
	if statusOf(report, "Gemini API key") != domain.HealthOK {
		t.Fatalf("env key should satisfy the check: %+v", report.Checks)
	}
	if len(verifier.keys) != 0 {
		t.Fatal("offline doctor must not call the verifier")
	}
}

func TestDoctorConfigLoadFailure(t *testing.T) {
	svc, _ := newService(t, nil)
	svc.ConfigProvider = stubConfig{err: errors.New("permission denied")}
	report, err := svc.Run(context.Background(), Options{})
	if err == nil || report.Failed() != 1 {
		t.Fatalf("Run() = %+v, %v", report, err)
	}
}

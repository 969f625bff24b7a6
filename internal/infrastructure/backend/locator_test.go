package backend

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/doeshing/saurus-go/internal/domain"
)

type locatorFixture struct {
	env, configDir, exe, cwd string
	installDir               string
}

func (f locatorFixture) locator() *Locator {
	l := NewLocator(domain.Config{Backend: domain.BackendSettings{InstallDir: f.installDir}})
	l.getenv = func(key string) string {
		if key == domain.BackendDirEnvVar {
			return f.env
		}
		return ""
	}
	l.userConfigDir = func() (string, error) {
		if f.configDir == "" {
			return "", errors.New("no config dir")
		}
		return f.configDir, nil
	}
	l.executable = func() (string, error) { return f.exe, nil }
	l.getwd = func() (string, error) { return f.cwd, nil }
	return l
}

func TestLocatorResolutionOrder(t *testing.T) {
	base := t.TempDir()
	envDir := filepath.Join(base, "env")
	cfgDir := filepath.Join(base, "cfg")
	appSupport := filepath.Join(base, "support")
	appBackend := filepath.Join(appSupport, "Saurus", "backend")
	project := filepath.Join(base, "project")
	exe := filepath.Join(project, "App", ".build", "debug", "saurus")
	workDir := filepath.Join(base, "work", "sub")
	emptyDir := filepath.Join(base, "empty", "sub")

	tests := []struct {
		name       string
		setup      []string
		fixture    locatorFixture
		wantDir    string
		wantSource string
	}{
		{
			name:       "env override wins",
			setup:      []string{envDir, cfgDir, appBackend, project, workDir},
			fixture:    locatorFixture{env: envDir, installDir: cfgDir, configDir: appSupport, exe: exe, cwd: workDir},
			wantDir:    envDir,
			wantSource: SourceEnv,
		},
		{
			name:       "config install dir next",
			setup:      []string{cfgDir, appBackend},
			fixture:    locatorFixture{env: filepath.Join(base, "nope"), installDir: cfgDir, configDir: appSupport, exe: exe, cwd: emptyDir},
			wantDir:    cfgDir,
			wantSource: SourceConfig,
		},
		{
			name:       "application support dir",
			setup:      []string{appBackend, project},
			fixture:    locatorFixture{configDir: appSupport, exe: exe, cwd: emptyDir},
			wantDir:    appBackend,
			wantSource: SourceAppSupport,
		},
		{
			name:       "walk up from executable",
			setup:      []string{project, workDir},
			fixture:    locatorFixture{exe: exe, cwd: workDir},
			wantDir:    project,
			wantSource: SourceExecutable,
		},
		{
			name:       "working directory",
			setup:      []string{workDir},
			fixture:    locatorFixture{exe: exe, cwd: workDir},
			wantDir:    workDir,
			wantSource: SourceWorkDir,
		},
		{
			name:       "parent of working directory",
			setup:      []string{filepath.Dir(workDir)},
			fixture:    locatorFixture{exe: exe, cwd: workDir},
			wantDir:    filepath.Dir(workDir),
			wantSource: SourceParentDir,
		},
		{
			name:       "unverified fallback",
			fixture:    locatorFixture{exe: exe, cwd: emptyDir},
			wantDir:    emptyDir,
			wantSource: SourceFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := scaffold(t, tt.setup)
			defer cleanup()

			dir, source := tt.fixture.locator().Locate()
			if dir != tt.wantDir || source != tt.wantSource {
				t.Fatalf("Locate() = (%s, %s), want (%s, %s)", dir, source, tt.wantDir, tt.wantSource)
			}
		})
	}
}

func TestLocatorCandidatesReportVerification(t *testing.T) {
	base := t.TempDir()
	writeScriptOnly(t, filepath.Join(base, "env"))
	f := locatorFixture{env: filepath.Join(base, "env"), exe: filepath.Join(base, "a", "b", "c", "bin"), cwd: filepath.Join(base, "x")}

	cands := f.locator().Candidates()
	if len(cands) == 0 || cands[0].Source != SourceEnv || !cands[0].Verified {
		t.Fatalf("unexpected candidates %+v", cands)
	}
	for _, c := range cands[1:] {
		if c.Verified {
			t.Fatalf("only env candidate should verify: %+v", c)
		}
	}
}

// scaffold writes the entry script into each dir and returns a func removing them.
func scaffold(t *testing.T, dirs []string) func() {
	t.Helper()
	for _, d := range dirs {
		writeScriptOnly(t, d)
	}
	return func() {
		for _, d := range dirs {
			_ = removeIfExists(filepath.Join(d, domain.DefaultBackendScript))
		}
	}
}

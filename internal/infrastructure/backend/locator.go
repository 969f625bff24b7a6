// Package backend builds and runs the external assistant backend process.
package backend

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/ports"
)

// Discovery sources reported by Locate.
const (
	SourceEnv        = "env"
	SourceConfig     = "config"
	SourceAppSupport = "app-support"
	SourceExecutable = "executable"
	SourceWorkDir    = "cwd"
	SourceParentDir  = "cwd-parent"
	SourceFallback   = domain.BackendSourceFallback
)

// Candidate is one place the locator looks for the backend.
type Candidate struct {
	Source   string
	Dir      string
	Verified bool
}

// Locator finds the backend root. The first candidate containing the entry
// script wins; otherwise the working directory is returned unverified.
type Locator struct {
	cfg           domain.Config
	getenv        func(string) string
	executable    func() (string, error)
	getwd         func() (string, error)
	userConfigDir func() (string, error)
}

// NewLocator builds a locator using the real process environment.
func NewLocator(cfg domain.Config) *Locator {
	return &Locator{
		cfg:           cfg,
		getenv:        os.Getenv,
		executable:    os.Executable,
		getwd:         os.Getwd,
		userConfigDir: os.UserConfigDir,
	}
}

// Locate implements ports.BackendLocator.
func (l *Locator) Locate() (string, string) {
	for _, c := range l.Candidates() {
		if c.Verified {
			return c.Dir, c.Source
		}
	}
	cwd, err := l.getwd()
	if err != nil {
		cwd = "."
	}
	return cwd, SourceFallback
}

// Candidates lists every probed location in resolution order.
func (l *Locator) Candidates() []Candidate {
	var out []Candidate
	add := func(source, dir string) {
		if strings.TrimSpace(dir) == "" {
			return
		}
		dir = filepath.Clean(expandHome(dir))
		out = append(out, Candidate{Source: source, Dir: dir, Verified: l.hasScript(dir)})
	}

	add(SourceEnv, l.getenv(domain.BackendDirEnvVar))
	add(SourceConfig, l.cfg.Backend.InstallDir)

	if base, err := l.userConfigDir(); err == nil {
		add(SourceAppSupport, filepath.Join(base, l.cfg.GetBackendAppDir(), "backend"))
	}

	if exe, err := l.executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir := filepath.Dir(exe)
		for i := 0; i < l.cfg.GetSearchLevels(); i++ {
			dir = filepath.Dir(dir)
		}
		add(SourceExecutable, dir)
	}

	if cwd, err := l.getwd(); err == nil {
		add(SourceWorkDir, cwd)
		add(SourceParentDir, filepath.Dir(cwd))
	}
	return out
}

func (l *Locator) hasScript(dir string) bool {
	script := l.cfg.GetBackendScript()
	if !filepath.IsAbs(script) {
		script = filepath.Join(dir, script)
	}
	info, err := os.Stat(script)
	return err == nil && !info.IsDir()
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

var _ ports.BackendLocator = (*Locator)(nil)

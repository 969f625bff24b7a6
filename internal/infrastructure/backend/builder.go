package backend

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/doeshing/saurus-go/internal/domain"
)

// Builder turns a PromptRequest into a BackendInvocation.
type Builder struct {
	cfg     domain.Config
	environ func() []string
}

// NewBuilder creates a builder that inherits the current process environment.
func NewBuilder(cfg domain.Config) *Builder {
	return &Builder{cfg: cfg, environ: os.Environ}
}

// Resolve verifies the executable and script exist under root. It is the
// preflight check and never starts a process.
func (b *Builder) Resolve(root, source string) (domain.BackendPaths, error) {
	paths := domain.BackendPaths{
		Root:       root,
		Executable: underRoot(root, b.cfg.GetBackendExecutable()),
		Script:     underRoot(root, b.cfg.GetBackendScript()),
		Source:     source,
	}

	if !fileExists(paths.Executable) {
		return paths, &domain.AssistError{
			Kind:       domain.KindPreflightNotFound,
			Path:       paths.Executable,
			ExitCode:   domain.LaunchFailureCode,
			Diagnostic: fmt.Sprintf("backend runtime not found at %s (create the venv in %s or set %s)", paths.Executable, root, domain.BackendDirEnvVar),
		}
	}
	if !fileExists(paths.Script) {
		return paths, &domain.AssistError{
			Kind:       domain.KindPreflightNotFound,
			Path:       paths.Script,
			ExitCode:   domain.LaunchFailureCode,
			Diagnostic: fmt.Sprintf("backend script not found at %s (set %s to the backend directory)", paths.Script, domain.BackendDirEnvVar),
		}
	}
	return paths, nil
}

// Build assembles the invocation. screenshot may be empty.
func (b *Builder) Build(paths domain.BackendPaths, req domain.PromptRequest, screenshot string) domain.BackendInvocation {
	if req.Engine == "" {
		req.Engine = domain.EngineGemini
	}

	args := []string{
		domain.FlagPrompt, req.Prompt,
		domain.FlagContext, req.Context,
		domain.FlagEngine, string(req.Engine),
	}
	if req.Engine.IsLocal() {
		args = append(args, domain.FlagOllamaModel, req.EffectiveLocalModel())
	}
	if screenshot != "" {
		args = append(args, domain.FlagScreenshot, screenshot)
	}

	overrides := map[string]string{
		domain.WarningsEnvVar: domain.WarningsEnvValue,
	}
	if key := strings.TrimSpace(req.APIKey); key != "" {
		overrides[domain.APIKeyEnvVar] = key
	}

	return domain.BackendInvocation{
		Executable: paths.Executable,
		Script:     paths.Script,
		Args:       args,
		Dir:        paths.Root,
		Env:        mergeEnv(b.environ(), overrides),
	}
}

// mergeEnv replaces or appends the override keys in base.
func mergeEnv(base []string, overrides map[string]string) []string {
	out := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, replaced := overrides[key]; replaced {
			continue
		}
		out = append(out, kv)
	}
	for _, key := range sortedKeys(overrides) {
		out = append(out, key+"="+overrides[key])
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func underRoot(root, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(root, rel)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

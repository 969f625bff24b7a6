package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/doeshing/saurus-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateBackend(cfg); err != nil {
		return err
	}
	if err := validateOllama(cfg.Ollama); err != nil {
		return err
	}
	if err := validateHotkey(cfg.Hotkey); err != nil {
		return err
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	return validateLogging(cfg.Logging)
}

func validateBackend(cfg domain.Config) error {
	b := cfg.Backend
	if b.InstallDir != "" && !filepath.IsAbs(b.InstallDir) {
		return fmt.Errorf("backend.install_dir must be absolute, got %s", b.InstallDir)
	}
	for name, p := range map[string]string{"backend.executable": b.Executable, "backend.script": b.Script} {
		if p == "" {
			continue
		}
		if filepath.IsAbs(p) || strings.HasPrefix(filepath.Clean(p), "..") {
			return fmt.Errorf("%s must be relative to the backend root, got %s", name, p)
		}
	}
	if b.SearchLevels < 0 {
		return fmt.Errorf("backend.search_levels must be >= 0")
	}
	if _, err := cfg.GetBackendTimeout(); err != nil {
		return err
	}
	return nil
}

func validateOllama(o domain.OllamaSettings) error {
	if o.Host == "" {
		return nil
	}
	u, err := url.Parse(o.Host)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("ollama.host must be an http(s) URL, got %s", o.Host)
	}
	return nil
}

func validateHotkey(h domain.HotkeySettings) error {
	if h.Combo == "" {
		return nil
	}
	if strings.ContainsAny(h.Combo, `/\ `) {
		return fmt.Errorf("hotkey.combo must not contain slashes or spaces, got %q", h.Combo)
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	if history.Limit < 0 || history.Limit > domain.MaxHistoryEntries {
		return fmt.Errorf("history.limit must be between 0 and %d", domain.MaxHistoryEntries)
	}
	return nil
}

func validateLogging(l domain.LoggingSettings) error {
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %s", l.Level)
	}
}

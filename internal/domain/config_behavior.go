package domain

import (
	"fmt"
	"strings"
	"time"
)

// GetBackendExecutable returns the interpreter path relative to the backend root.
func (c *Config) GetBackendExecutable() string {
	if strings.TrimSpace(c.Backend.Executable) == "" {
		return DefaultBackendExecutable
	}
	return c.Backend.Executable
}

// GetBackendScript returns the entry script path relative to the backend root.
func (c *Config) GetBackendScript() string {
	if strings.TrimSpace(c.Backend.Script) == "" {
		return DefaultBackendScript
	}
	return c.Backend.Script
}

// GetBackendAppDir returns the directory name used under the user config dir.
func (c *Config) GetBackendAppDir() string {
	if strings.TrimSpace(c.Backend.AppDir) == "" {
		return DefaultBackendAppDir
	}
	return c.Backend.AppDir
}

// GetSearchLevels returns how many directories to climb from the binary.
func (c *Config) GetSearchLevels() int {
	if c.Backend.SearchLevels <= 0 {
		return DefaultSearchLevels
	}
	return c.Backend.SearchLevels
}

// GetBackendTimeout returns the backend timeout; zero means none.
func (c *Config) GetBackendTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Backend.Timeout)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("backend.timeout invalid: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("backend.timeout must be >= 0")
	}
	return d, nil
}

// GetOllamaHost returns the Ollama server URL.
func (c *Config) GetOllamaHost() string {
	if strings.TrimSpace(c.Ollama.Host) == "" {
		return DefaultOllamaHost
	}
	return c.Ollama.Host
}

// GetHotkeyCombo returns the combo bound to the panel trigger.
func (c *Config) GetHotkeyCombo() string {
	if strings.TrimSpace(c.Hotkey.Combo) == "" {
		return DefaultHotkeyCombo
	}
	return c.Hotkey.Combo
}

// GetHistoryLimit returns the history cap.
func (c *Config) GetHistoryLimit() int {
	if c.History.Limit <= 0 {
		return MaxHistoryEntries
	}
	return c.History.Limit
}

// GetLogLevel returns the configured log level, defaulting to info.
func (c *Config) GetLogLevel() string {
	if strings.TrimSpace(c.Logging.Level) == "" {
		return "info"
	}
	return strings.ToLower(c.Logging.Level)
}

package domain

// Config mirrors ~/.saurus/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version" json:"config_format_version"`
	Backend             BackendSettings `yaml:"backend" json:"backend"`
	Ollama              OllamaSettings  `yaml:"ollama" json:"ollama"`
	Hotkey              HotkeySettings  `yaml:"hotkey" json:"hotkey"`
	History             HistorySettings `yaml:"history" json:"history"`
	Logging             LoggingSettings `yaml:"logging" json:"logging"`
}

// BackendSettings describes where the backend lives and how to start it.
type BackendSettings struct {
	InstallDir   string `yaml:"install_dir" json:"install_dir"`
	Executable   string `yaml:"executable" json:"executable"`
	Script       string `yaml:"script" json:"script"`
	AppDir       string `yaml:"app_dir" json:"app_dir"`
	SearchLevels int    `yaml:"search_levels" json:"search_levels"`
	// Timeout is a Go duration string; empty or "0" waits forever.
	Timeout string `yaml:"timeout" json:"timeout"`
}

// OllamaSettings points at the local model server.
type OllamaSettings struct {
	Host string `yaml:"host" json:"host"`
}

// HotkeySettings configures the trigger-file hotkey bridge.
type HotkeySettings struct {
	Combo      string `yaml:"combo" json:"combo"`
	TriggerDir string `yaml:"trigger_dir" json:"trigger_dir"`
}

// HistorySettings configures the persisted prompt history.
type HistorySettings struct {
	Limit int `yaml:"limit" json:"limit"`
}

// LoggingSettings configures the application logger.
type LoggingSettings struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Backend subprocess contract
const (
	// APIKeyEnvVar carries the cloud engine credential to the backend.
	APIKeyEnvVar = "GEMINI_API_KEY"
	// WarningsEnvVar silences interpreter warnings on the backend's stderr.
	WarningsEnvVar = "PYTHONWARNINGS"
	// WarningsEnvValue is the value assigned to WarningsEnvVar.
	WarningsEnvValue = "ignore"
	// BackendDirEnvVar overrides backend discovery.
	BackendDirEnvVar = "SAURUS_BACKEND_DIR"
	// BackendSourceFallback marks an unverified backend location.
	BackendSourceFallback = "fallback"

	FlagPrompt      = "--prompt"
	FlagContext     = "--context"
	FlagEngine      = "--engine"
	FlagOllamaModel = "--ollama-model"
	FlagScreenshot  = "--screenshot"
)

// Backend layout defaults
const (
	DefaultBackendExecutable = "venv/bin/python"
	DefaultBackendScript     = "backend.py"
	DefaultBackendAppDir     = "Saurus"
	// DefaultSearchLevels is how far to walk up from the running binary.
	DefaultSearchLevels = 3
)

// Engine defaults
const (
	DefaultLocalModel  = "llava"
	DefaultOllamaHost  = "http://localhost:11434"
	DefaultCloudModel  = "gemini-2.5-flash"
	DefaultHotkeyCombo = "cmd+option+g"
)

// History constants
const (
	// MaxHistoryEntries caps the persisted history list.
	MaxHistoryEntries = 25
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 10
)

// Timeout and duration constants
const (
	// DefaultCaptureTimeout bounds the screenshot tool.
	DefaultCaptureTimeout = 10 * time.Second
	// DefaultDoctorTimeout bounds network checks in doctor.
	DefaultDoctorTimeout = 15 * time.Second
	// ContextPreviewLength is how much context text the panel echoes.
	ContextPreviewLength = 60
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)

// Package ports defines the interfaces between the assistant core and its
// adapters.
//
// The application layer (askAssistant, the presentation session, doctor)
// depends only on these interfaces. Concrete adapters live under
// internal/infrastructure: the subprocess launcher, the screenshot tool, the
// SQLite preference store, the clipboard/hotkey platform bridge and the model
// catalog clients.
package ports

import (
	"context"

	"github.com/doeshing/saurus-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.saurus/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// CaptureProvider produces a JPEG screenshot for the given mode.
// An empty path with a nil error means nothing was captured.
type CaptureProvider interface {
	Capture(ctx context.Context, mode domain.CaptureMode) (string, error)
}

// BackendLocator resolves the directory the backend is installed in.
type BackendLocator interface {
	Locate() (root string, source string)
}

// InvocationBuilder preflights a backend root and assembles the command line.
type InvocationBuilder interface {
	Resolve(root, source string) (domain.BackendPaths, error)
	Build(paths domain.BackendPaths, req domain.PromptRequest, screenshot string) domain.BackendInvocation
}

// ProcessLauncher starts one subprocess and waits for it to exit.
// A non-nil error means the process never started; a started process that
// fails is reported through ProcessOutput.ExitCode.
type ProcessLauncher interface {
	Launch(ctx context.Context, inv domain.BackendInvocation) (domain.ProcessOutput, error)
}

// BackendRunner executes one invocation to completion and classifies it.
type BackendRunner interface {
	Run(ctx context.Context, inv domain.BackendInvocation, capturePath string) (string, error)
}

// Assistant is the upstream askAssistant operation.
type Assistant interface {
	Ask(ctx context.Context, req domain.PromptRequest) (string, error)
}

// PreferenceStore persists small scalar settings under fixed keys.
type PreferenceStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	All() (map[string]string, error)
	Path() string
}

// HistoryRepository persists the bounded prompt history.
type HistoryRepository interface {
	Add(prompt, response string) (domain.HistoryEntry, bool, error)
	Entries() ([]domain.HistoryEntry, error)
	Clear() error
}

// Platform is the host capability used by the presentation layer.
// The orchestration core never depends on it.
type Platform interface {
	RegisterHotkey(combo string, callback func()) error
	ReadClipboardText() (string, error)
	Close() error
}

// Clipboard copies answers for the user.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// ModelCatalog lists and installs local models for the local engine.
type ModelCatalog interface {
	List(ctx context.Context) ([]domain.LocalModel, error)
	Pull(ctx context.Context, name string, progress func(domain.PullProgress)) error
}

// CredentialVerifier checks an API key against the cloud engine.
type CredentialVerifier interface {
	Verify(ctx context.Context, apiKey string) error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

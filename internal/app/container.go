package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/doeshing/saurus-go/internal/application/assistant"
	"github.com/doeshing/saurus-go/internal/application/doctor"
	"github.com/doeshing/saurus-go/internal/application/session"
	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/infrastructure/backend"
	"github.com/doeshing/saurus-go/internal/infrastructure/capture"
	"github.com/doeshing/saurus-go/internal/infrastructure/config"
	"github.com/doeshing/saurus-go/internal/infrastructure/gemini"
	"github.com/doeshing/saurus-go/internal/infrastructure/history"
	"github.com/doeshing/saurus-go/internal/infrastructure/ollama"
	"github.com/doeshing/saurus-go/internal/infrastructure/platform"
	"github.com/doeshing/saurus-go/internal/infrastructure/preferences"
	"github.com/doeshing/saurus-go/internal/pkg/logger"
	"github.com/doeshing/saurus-go/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         *logger.StdLogger

	Assistant   *assistant.Service
	Doctor      *doctor.Service
	Preferences ports.PreferenceStore
	History     *history.Repository
	Models      ports.ModelCatalog
	Clipboard   *platform.Clipboard
	Paster      *platform.Paster
	Locator     *backend.Locator

	TriggerDir string
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	if err := config.LoadEnvFile(""); err != nil {
		return nil, err
	}

	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Options{Verbose: verbose, Level: cfg.GetLogLevel(), File: cfg.Logging.File})
	if log == nil {
		return nil, err
	}
	if err != nil {
		// A broken log file must not block doctor or config commands.
		log.Warn("log file unavailable, logging to stderr only", map[string]interface{}{
			"file":  cfg.Logging.File,
			"error": err.Error(),
		})
	}

	timeout, err := cfg.GetBackendTimeout()
	if err != nil {
		return nil, err
	}
	catalog, err := ollama.NewCatalog(cfg.GetOllamaHost(), nil)
	if err != nil {
		return nil, err
	}

	prefs := preferences.Open(preferences.DefaultPath(), log)
	locator := backend.NewLocator(cfg)
	builder := backend.NewBuilder(cfg)
	clipboard := platform.NewClipboard()

	assistantService := &assistant.Service{
		Locator: locator,
		Builder: builder,
		Capture: capture.NewScreenshotProvider(log),
		Runner:  backend.NewRunner(backend.NewExecLauncher(), log),
		Logger:  log,
		Timeout: timeout,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Locator:        locator,
		Builder:        builder,
		Preferences:    prefs,
		Models:         catalog,
		Verifier:       gemini.NewVerifier(""),
		Clipboard:      clipboard,
	}

	triggerDir := cfg.Hotkey.TriggerDir
	if triggerDir == "" {
		triggerDir = filepath.Join(config.Dir(), "triggers")
	}

	log.Debug("container ready", map[string]interface{}{
		"config":      cfgLoader.Path(),
		"preferences": prefs.Path(),
	})

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Assistant:      assistantService,
		Doctor:         doctorService,
		Preferences:    prefs,
		History:        history.NewRepository(prefs, cfg.GetHistoryLimit()),
		Models:         catalog,
		Clipboard:      clipboard,
		Paster:         platform.NewPaster(clipboard),
		Locator:        locator,
		TriggerDir:     triggerDir,
	}, nil
}

// NewSession builds a presentation session over the container's services.
func (c *Container) NewSession() (*session.Session, error) {
	s := session.New(c.Assistant, c.Preferences, c.History, c.Logger)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewPlatform builds the clipboard and hotkey bridge.
func (c *Container) NewPlatform() *platform.Desktop {
	return platform.NewDesktop(c.Clipboard, c.TriggerDir, c.Logger)
}

// Close releases the preference database and log file.
func (c *Container) Close() error {
	var firstErr error
	if closer, ok := c.Preferences.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			firstErr = fmt.Errorf("close preferences: %w", err)
		}
	}
	if err := c.Logger.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Package assistant answers one prompt by running the backend once.
package assistant

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/ports"
)

// Service orchestrates a single request end-to-end: validate, locate and
// preflight the backend, capture the screen, run the backend.
type Service struct {
	Locator ports.BackendLocator
	Builder ports.InvocationBuilder
	Capture ports.CaptureProvider
	Runner  ports.BackendRunner
	Logger  ports.Logger
	// Timeout bounds the backend run; zero waits until it exits.
	Timeout time.Duration

	getenv func(string) string
}

// Ask implements ports.Assistant. Failures are *domain.AssistError values.
// Calls are independent; the service does not serialize them.
func (s *Service) Ask(ctx context.Context, req domain.PromptRequest) (string, error) {
	if s.Locator == nil || s.Builder == nil || s.Runner == nil || s.Logger == nil {
		return "", errors.New("assistant.Service dependencies not satisfied")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Engine == "" {
		req.Engine = domain.EngineGemini
	}
	if err := s.validate(req); err != nil {
		return "", err
	}

	root, source := s.Locator.Locate()
	paths, err := s.Builder.Resolve(root, source)
	if err != nil {
		s.Logger.Warn("backend preflight failed", map[string]interface{}{
			"root":   root,
			"source": source,
			"error":  err.Error(),
		})
		return "", err
	}

	screenshot := s.capture(ctx, req.CaptureMode)
	inv := s.Builder.Build(paths, req, screenshot)

	s.Logger.Info("running backend", map[string]interface{}{
		"root":       paths.Root,
		"source":     paths.Source,
		"engine":     string(req.Engine),
		"screenshot": screenshot != "",
	})

	runCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.Runner.Run(runCtx, inv, screenshot)
	if err != nil {
		s.Logger.Error("backend request failed", err, map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return "", err
	}
	s.Logger.Debug("backend answered", map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
		"bytes":       len(text),
	})
	return text, nil
}

func (s *Service) validate(req domain.PromptRequest) error {
	if req.Prompt == "" {
		return &domain.AssistError{Kind: domain.KindEmptyInput, Diagnostic: "prompt is empty"}
	}
	if req.Engine == domain.EngineGemini && strings.TrimSpace(req.APIKey) == "" &&
		strings.TrimSpace(s.env(domain.APIKeyEnvVar)) == "" {
		return &domain.AssistError{
			Kind:       domain.KindEmptyInput,
			Diagnostic: "a Gemini API key is required; set it with `saurus prefs set gemini_api_key <key>` or export " + domain.APIKeyEnvVar,
		}
	}
	return nil
}

// capture returns an empty path when capture is off or fails.
func (s *Service) capture(ctx context.Context, mode domain.CaptureMode) string {
	if s.Capture == nil || mode == "" || mode == domain.CaptureNone {
		return ""
	}
	path, err := s.Capture.Capture(ctx, mode)
	if err != nil {
		s.Logger.Warn("screen capture failed, continuing without screenshot", map[string]interface{}{
			"mode":  string(mode),
			"error": err.Error(),
		})
		return ""
	}
	return path
}

func (s *Service) env(key string) string {
	if s.getenv != nil {
		return s.getenv(key)
	}
	return os.Getenv(key)
}

var _ ports.Assistant = (*Service)(nil)

// Package doctor diagnoses a Saurus installation.
package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	appconfig "github.com/doeshing/saurus-go/internal/application/config"
	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/ports"
)

// Options selects optional checks.
type Options struct {
	// Online verifies the API key against the cloud engine.
	Online bool
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Locator        ports.BackendLocator
	Builder        ports.InvocationBuilder
	Preferences    ports.PreferenceStore
	Models         ports.ModelCatalog
	Verifier       ports.CredentialVerifier
	Clipboard      ports.Clipboard

	getenv func(string) string
}

// Run executes checks and returns a report. The error is non-nil only when
// the configuration itself cannot be loaded.
func (s *Service) Run(ctx context.Context, opts Options) (domain.HealthReport, error) {
	var report domain.HealthReport

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		report.Add("Config file", domain.HealthError, fmt.Sprintf("load failed: %v", err))
		return report, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		report.Add("Config file", domain.HealthError, err.Error())
	} else {
		report.Add("Config file", domain.HealthOK, fmt.Sprintf("format version %s", cfg.ConfigFormatVersion))
	}

	s.backendChecks(&report)

	prefs := s.preferences(&report)
	s.credentialCheck(ctx, &report, prefs, opts)
	s.localModelCheck(ctx, &report, prefs)

	report.Add("Screen capture", domain.HealthOK, fmt.Sprintf("mode %s", prefs.CaptureMode()))
	if s.Clipboard != nil {
		if s.Clipboard.Enabled() {
			report.Add("Clipboard", domain.HealthOK, "available")
		} else {
			report.Add("Clipboard", domain.HealthWarn, "no clipboard utility found")
		}
	}
	return report, nil
}

func (s *Service) backendChecks(report *domain.HealthReport) {
	if s.Locator == nil || s.Builder == nil {
		report.Add("Backend", domain.HealthWarn, "backend checks not configured")
		return
	}
	root, source := s.Locator.Locate()
	if source == domain.BackendSourceFallback {
		report.Add("Backend location", domain.HealthWarn, fmt.Sprintf("no backend found in search locations, using %s", root))
	} else {
		report.Add("Backend location", domain.HealthOK, fmt.Sprintf("%s (%s)", root, source))
	}
	paths, err := s.Builder.Resolve(root, source)
	if err != nil {
		report.Add("Backend files", domain.HealthError, err.Error())
		return
	}
	report.Add("Backend files", domain.HealthOK, fmt.Sprintf("%s %s", paths.Executable, paths.Script))
}

func (s *Service) preferences(report *domain.HealthReport) domain.Preferences {
	if s.Preferences == nil {
		return domain.DecodePreferences(nil)
	}
	raw, err := s.Preferences.All()
	if err != nil {
		report.Add("Preferences", domain.HealthError, fmt.Sprintf("%s: %v", s.Preferences.Path(), err))
		return domain.DecodePreferences(nil)
	}
	prefs := domain.DecodePreferences(raw)
	details := fmt.Sprintf("%s, engine %s", s.Preferences.Path(), prefs.Engine)
	if !prefs.OnboardingComplete {
		report.Add("Preferences", domain.HealthWarn, details+", onboarding not completed (run `saurus onboard`)")
	} else {
		report.Add("Preferences", domain.HealthOK, details)
	}
	return prefs
}

func (s *Service) credentialCheck(ctx context.Context, report *domain.HealthReport, prefs domain.Preferences, opts Options) {
	key, origin := prefs.APIKey, "preferences"
	if key == "" {
		key, origin = strings.TrimSpace(s.env(domain.APIKeyEnvVar)), domain.APIKeyEnvVar
	}

	status := domain.HealthWarn
	if prefs.Engine == domain.EngineGemini {
		status = domain.HealthError
	}
	if key == "" {
		report.Add("Gemini API key", status, "not set")
		return
	}
	if !opts.Online || s.Verifier == nil {
		report.Add("Gemini API key", domain.HealthOK, fmt.Sprintf("%s from %s", domain.MaskSecret(key), origin))
		return
	}

	vctx, cancel := context.WithTimeout(ctx, domain.DefaultDoctorTimeout)
	defer cancel()
	if err := s.Verifier.Verify(vctx, key); err != nil {
		report.Add("Gemini API key", status, err.Error())
		return
	}
	report.Add("Gemini API key", domain.HealthOK, fmt.Sprintf("%s from %s verified", domain.MaskSecret(key), origin))
}

func (s *Service) localModelCheck(ctx context.Context, report *domain.HealthReport, prefs domain.Preferences) {
	if s.Models == nil {
		return
	}
	status := domain.HealthWarn
	if prefs.Engine.IsLocal() {
		status = domain.HealthError
	}

	lctx, cancel := context.WithTimeout(ctx, domain.DefaultDoctorTimeout)
	defer cancel()
	models, err := s.Models.List(lctx)
	if err != nil {
		report.Add("Ollama", status, err.Error())
		return
	}
	if !domain.HasLocalModel(models, prefs.LocalModel) {
		report.Add("Ollama", status, fmt.Sprintf("model %s not installed (try: saurus models pull %s)", prefs.LocalModel, prefs.LocalModel))
		return
	}
	report.Add("Ollama", domain.HealthOK, fmt.Sprintf("%d models, %s installed", len(models), prefs.LocalModel))
}

func (s *Service) env(key string) string {
	if s.getenv != nil {
		return s.getenv(key)
	}
	return os.Getenv(key)
}

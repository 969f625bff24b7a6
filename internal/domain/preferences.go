package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PreferenceKey addresses one value in the flat preference store.
type PreferenceKey string

const (
	PrefAPIKey             PreferenceKey = "gemini_api_key"
	PrefEngine             PreferenceKey = "selected_engine"
	PrefLocalModel         PreferenceKey = "ollama_model"
	PrefOnboardingComplete PreferenceKey = "onboarding_complete"
	PrefCaptureWindow      PreferenceKey = "capture_window"
	PrefCaptureDesktop     PreferenceKey = "capture_desktop"
	PrefHistory            PreferenceKey = "history"
)

// ScalarPreferenceKeys lists the user-editable keys in display order.
var ScalarPreferenceKeys = []PreferenceKey{
	PrefAPIKey,
	PrefEngine,
	PrefLocalModel,
	PrefOnboardingComplete,
	PrefCaptureWindow,
	PrefCaptureDesktop,
}

// IsScalarPreference reports whether key is one of ScalarPreferenceKeys.
func IsScalarPreference(key string) bool {
	for _, k := range ScalarPreferenceKeys {
		if string(k) == key {
			return true
		}
	}
	return false
}

// Preferences is the decoded view of the scalar keys.
type Preferences struct {
	APIKey             string
	Engine             Engine
	LocalModel         string
	OnboardingComplete bool
	CaptureWindow      bool
	CaptureDesktop     bool
}

// DecodePreferences builds Preferences from raw store values.
func DecodePreferences(raw map[string]string) Preferences {
	engine, err := ParseEngine(raw[string(PrefEngine)])
	if err != nil {
		engine = EngineGemini
	}
	model := strings.TrimSpace(raw[string(PrefLocalModel)])
	if model == "" {
		model = DefaultLocalModel
	}
	return Preferences{
		APIKey:             strings.TrimSpace(raw[string(PrefAPIKey)]),
		Engine:             engine,
		LocalModel:         model,
		OnboardingComplete: parseBool(raw[string(PrefOnboardingComplete)]),
		CaptureWindow:      parseBool(raw[string(PrefCaptureWindow)]),
		CaptureDesktop:     parseBool(raw[string(PrefCaptureDesktop)]),
	}
}

// CaptureMode derives the capture policy from the two toggles. The desktop
// toggle wins when both are set.
func (p Preferences) CaptureMode() CaptureMode {
	switch {
	case p.CaptureDesktop:
		return CaptureDesktop
	case p.CaptureWindow:
		return CaptureWindow
	default:
		return CaptureNone
	}
}

// FormatBool encodes a boolean preference.
func FormatBool(v bool) string {
	return strconv.FormatBool(v)
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}

// MaskSecret hides all but the last four characters of a secret.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

// NormalizePreference validates value for key and returns its stored form.
func NormalizePreference(key, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch PreferenceKey(key) {
	case PrefEngine:
		engine, err := ParseEngine(value)
		if err != nil {
			return "", err
		}
		return string(engine), nil
	case PrefOnboardingComplete, PrefCaptureWindow, PrefCaptureDesktop:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		return FormatBool(v), nil
	case PrefAPIKey, PrefLocalModel:
		return value, nil
	default:
		return "", fmt.Errorf("unknown preference %q", key)
	}
}

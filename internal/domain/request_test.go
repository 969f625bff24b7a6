package domain_test

import (
	"testing"

	"github.com/doeshing/saurus-go/internal/domain"
)

func TestParseEngine(t *testing.T) {
	tests := []struct {
		raw       string
		want      domain.Engine
		wantError bool
	}{
		{raw: "", want: domain.EngineGemini},
		{raw: "Gemini", want: domain.EngineGemini},
		{raw: " ollama ", want: domain.EngineOllama},
		{raw: "openai", wantError: true},
	}
	for _, tt := range tests {
		got, err := domain.ParseEngine(tt.raw)
		if tt.wantError != (err != nil) {
			t.Fatalf("ParseEngine(%q) error = %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("ParseEngine(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestParseCaptureMode(t *testing.T) {
	tests := []struct {
		raw       string
		want      domain.CaptureMode
		wantError bool
	}{
		{raw: "", want: domain.CaptureNone},
		{raw: "off", want: domain.CaptureNone},
		{raw: "focused-window", want: domain.CaptureWindow},
		{raw: "DESKTOP", want: domain.CaptureDesktop},
		{raw: "region", wantError: true},
	}
	for _, tt := range tests {
		got, err := domain.ParseCaptureMode(tt.raw)
		if tt.wantError != (err != nil) {
			t.Fatalf("ParseCaptureMode(%q) error = %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("ParseCaptureMode(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestEffectiveLocalModel(t *testing.T) {
	cloud := domain.PromptRequest{Engine: domain.EngineGemini, LocalModel: "llama3"}
	if got := cloud.EffectiveLocalModel(); got != "" {
		t.Fatalf("cloud engine should not carry a model, got %q", got)
	}
	local := domain.PromptRequest{Engine: domain.EngineOllama}
	if got := local.EffectiveLocalModel(); got != domain.DefaultLocalModel {
		t.Fatalf("expected default local model, got %q", got)
	}
	local.LocalModel = "llama3.2-vision"
	if got := local.EffectiveLocalModel(); got != "llama3.2-vision" {
		t.Fatalf("got %q", got)
	}
}

func TestDecodePreferences(t *testing.T) {
	prefs := domain.DecodePreferences(map[string]string{
		"gemini_api_key":  " key ",
		"selected_engine": "ollama",
		"capture_window":  "true",
		"capture_desktop": "1",
	})
	if prefs.APIKey != "key" || prefs.Engine != domain.EngineOllama {
		t.Fatalf("unexpected prefs %+v", prefs)
	}
	if prefs.LocalModel != domain.DefaultLocalModel {
		t.Fatalf("expected default model, got %q", prefs.LocalModel)
	}
	if prefs.CaptureMode() != domain.CaptureDesktop {
		t.Fatalf("desktop toggle should win, got %s", prefs.CaptureMode())
	}

	empty := domain.DecodePreferences(nil)
	if empty.Engine != domain.EngineGemini || empty.CaptureMode() != domain.CaptureNone || empty.OnboardingComplete {
		t.Fatalf("unexpected defaults %+v", empty)
	}
}

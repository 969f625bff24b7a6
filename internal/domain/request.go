package domain

import (
	"fmt"
	"strings"
)

// Engine selects which inference path the backend uses.
type Engine string

const (
	// EngineGemini is the hosted cloud engine.
	EngineGemini Engine = "gemini"
	// EngineOllama is a locally hosted model served by Ollama.
	EngineOllama Engine = "ollama"
)

// ParseEngine normalizes user input into an Engine.
func ParseEngine(raw string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(raw))) {
	case "", EngineGemini:
		return EngineGemini, nil
	case EngineOllama:
		return EngineOllama, nil
	default:
		return "", fmt.Errorf("unknown engine %q (want gemini|ollama)", raw)
	}
}

// IsLocal reports whether the engine runs a local model.
func (e Engine) IsLocal() bool {
	return e == EngineOllama
}

// CaptureMode decides what, if anything, is screenshotted for a request.
type CaptureMode string

const (
	CaptureNone    CaptureMode = "none"
	CaptureWindow  CaptureMode = "window"
	CaptureDesktop CaptureMode = "desktop"
)

// ParseCaptureMode normalizes user input into a CaptureMode.
func ParseCaptureMode(raw string) (CaptureMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none", "off":
		return CaptureNone, nil
	case "window", "focused-window":
		return CaptureWindow, nil
	case "desktop", "screen", "entire-desktop":
		return CaptureDesktop, nil
	default:
		return "", fmt.Errorf("unknown capture mode %q (want none|window|desktop)", raw)
	}
}

// PromptRequest is what the presentation layer submits for one prompt.
type PromptRequest struct {
	Prompt      string
	Context     string
	APIKey      string
	Engine      Engine
	LocalModel  string
	CaptureMode CaptureMode
}

// EffectiveLocalModel returns the model name sent to the backend, or "" when
// the engine does not use one.
func (r PromptRequest) EffectiveLocalModel() string {
	if !r.Engine.IsLocal() {
		return ""
	}
	if model := strings.TrimSpace(r.LocalModel); model != "" {
		return model
	}
	return DefaultLocalModel
}

// BackendInvocation is a fully resolved subprocess launch.
// Args holds everything after the script path.
type BackendInvocation struct {
	Executable string
	Script     string
	Args       []string
	Dir        string
	Env        []string
}

// Argv returns the argument vector passed to the executable.
func (i BackendInvocation) Argv() []string {
	argv := make([]string, 0, len(i.Args)+1)
	argv = append(argv, i.Script)
	return append(argv, i.Args...)
}

// HasFlag reports whether flag appears in the argument vector.
func (i BackendInvocation) HasFlag(flag string) bool {
	_, ok := i.FlagValue(flag)
	return ok
}

// FlagValue returns the value following flag in the argument vector.
func (i BackendInvocation) FlagValue(flag string) (string, bool) {
	for idx, arg := range i.Args {
		if arg == flag {
			if idx+1 < len(i.Args) {
				return i.Args[idx+1], true
			}
			return "", true
		}
	}
	return "", false
}

// ProcessOutput is the raw outcome of a finished subprocess.
type ProcessOutput struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// BackendResult is either a trimmed answer or a failure.
type BackendResult struct {
	Text string
	Err  error
}

// OK reports whether the result is a success.
func (r BackendResult) OK() bool {
	return r.Err == nil
}

// BackendPaths are the verified locations of a backend installation.
type BackendPaths struct {
	Root       string
	Executable string
	Script     string
	// Source names the discovery rule that produced Root.
	Source string
}

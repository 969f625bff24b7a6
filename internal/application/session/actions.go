package session

import (
	"github.com/doeshing/saurus-go/internal/domain"
)

// Action is a state transition applied on the session loop.
type Action interface {
	action()
}

// SubmitPrompt starts a request for Prompt with the current context and
// preferences. It is rejected with ErrBusy while a request is pending.
type SubmitPrompt struct {
	Prompt string
}

// SetContext replaces the context text sent with the next prompt.
type SetContext struct {
	Text string
}

// AddHistory records a prompt/response pair.
type AddHistory struct {
	Prompt   string
	Response string
}

// SavePreference writes one scalar preference.
type SavePreference struct {
	Key   domain.PreferenceKey
	Value string
}

// ClearHistory removes all history entries.
type ClearHistory struct{}

// SelectEngine switches the backend engine.
type SelectEngine struct {
	Engine domain.Engine
}

// askCompleted carries a finished request back onto the loop.
type askCompleted struct {
	prompt string
	text   string
	err    error
}

func (SubmitPrompt) action()   {}
func (SetContext) action()     {}
func (AddHistory) action()     {}
func (SavePreference) action() {}
func (ClearHistory) action()   {}
func (SelectEngine) action()   {}
func (askCompleted) action()   {}

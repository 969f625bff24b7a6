package session

import (
	"github.com/doeshing/saurus-go/internal/domain"
)

// State is what the panel renders. Snapshots published on Updates are
// copies; mutating them has no effect on the session.
type State struct {
	Prompt   string
	Context  string
	Response string
	Pending  bool

	Err         error
	Category    domain.FailureCategory
	Remediation string

	Engine      domain.Engine
	LocalModel  string
	CaptureMode domain.CaptureMode
	APIKeySet   bool
	Onboarded   bool

	History []domain.HistoryEntry
}

func (s State) clone() State {
	if s.History != nil {
		s.History = append([]domain.HistoryEntry(nil), s.History...)
	}
	return s
}

func (s *State) applyPreferences(p domain.Preferences) {
	s.Engine = p.Engine
	s.LocalModel = p.LocalModel
	s.CaptureMode = p.CaptureMode()
	s.APIKeySet = p.APIKey != ""
	s.Onboarded = p.OnboardingComplete
}

func (s *State) clearError() {
	s.Err = nil
	s.Category = ""
	s.Remediation = ""
}

// Package session owns the panel state. One goroutine applies actions in
// order; assistant requests run in the background and post their result
// back as an action.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/ports"
)

var (
	// ErrBusy rejects a submit while a request is pending.
	ErrBusy = errors.New("a request is already in progress")
	// ErrStopped is returned by Dispatch once Run has exited.
	ErrStopped = errors.New("session stopped")
)

type envelope struct {
	action Action
	result chan error
}

// Session is the presentation state machine.
type Session struct {
	assistant ports.Assistant
	prefs     ports.PreferenceStore
	history   ports.HistoryRepository
	logger    ports.Logger

	actions chan envelope
	updates chan State
	done    chan struct{}

	// Owned by the Run goroutine once it starts.
	state State
	raw   map[string]string
	ctx   context.Context
}

// New builds a session. Call Load before Run.
func New(assistant ports.Assistant, prefs ports.PreferenceStore, history ports.HistoryRepository, logger ports.Logger) *Session {
	return &Session{
		assistant: assistant,
		prefs:     prefs,
		history:   history,
		logger:    logger,
		actions:   make(chan envelope),
		updates:   make(chan State, 1),
		done:      make(chan struct{}),
		raw:       make(map[string]string),
	}
}

// Load reads preferences and history into the initial state.
func (s *Session) Load() error {
	raw, err := s.prefs.All()
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	delete(raw, string(domain.PrefHistory))
	s.raw = raw
	s.state.applyPreferences(domain.DecodePreferences(raw))

	entries, err := s.history.Entries()
	if err != nil {
		s.logger.Warn("history unreadable, starting empty", map[string]interface{}{"error": err.Error()})
		entries = nil
	}
	s.state.History = entries
	return nil
}

// Updates publishes a snapshot after every applied action. Only the latest
// snapshot is kept when the reader falls behind.
func (s *Session) Updates() <-chan State {
	return s.updates
}

// Run applies actions until ctx is done. Background requests inherit ctx.
func (s *Session) Run(ctx context.Context) error {
	s.ctx = ctx
	defer close(s.done)
	s.publish()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env := <-s.actions:
			err := s.apply(env.action)
			if env.result != nil {
				env.result <- err
			}
			s.publish()
		}
	}
}

// Dispatch sends a to the loop and waits until it has been applied.
func (s *Session) Dispatch(ctx context.Context, a Action) error {
	env := envelope{action: a, result: make(chan error, 1)}
	select {
	case s.actions <- env:
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-env.result:
		return err
	case <-s.done:
		return ErrStopped
	}
}

// post enqueues a without waiting; used by background work.
func (s *Session) post(a Action) {
	select {
	case s.actions <- envelope{action: a}:
	case <-s.done:
	}
}

func (s *Session) publish() {
	snap := s.state.clone()
	select {
	case s.updates <- snap:
		return
	default:
	}
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- snap:
	default:
	}
}

func (s *Session) apply(a Action) error {
	switch a := a.(type) {
	case SubmitPrompt:
		return s.submit(a.Prompt)
	case askCompleted:
		s.complete(a)
		return nil
	case SetContext:
		s.state.Context = a.Text
		return nil
	case AddHistory:
		return s.addHistory(a.Prompt, a.Response)
	case SavePreference:
		return s.savePreference(a.Key, a.Value)
	case SelectEngine:
		engine, err := domain.ParseEngine(string(a.Engine))
		if err != nil {
			return err
		}
		return s.savePreference(domain.PrefEngine, string(engine))
	case ClearHistory:
		if err := s.history.Clear(); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		s.state.History = nil
		return nil
	default:
		return fmt.Errorf("unknown action %T", a)
	}
}

func (s *Session) submit(prompt string) error {
	if s.state.Pending {
		return ErrBusy
	}
	prefs := domain.DecodePreferences(s.raw)
	req := domain.PromptRequest{
		Prompt:      prompt,
		Context:     s.state.Context,
		APIKey:      prefs.APIKey,
		Engine:      prefs.Engine,
		LocalModel:  prefs.LocalModel,
		CaptureMode: prefs.CaptureMode(),
	}

	s.state.Prompt = prompt
	s.state.Pending = true
	s.state.Response = ""
	s.state.clearError()

	ctx := s.ctx
	go func() {
		text, err := s.assistant.Ask(ctx, req)
		s.post(askCompleted{prompt: prompt, text: text, err: err})
	}()
	return nil
}

func (s *Session) complete(res askCompleted) {
	s.state.Pending = false
	if res.err != nil {
		s.state.Err = res.err
		s.state.Category = domain.ClassifyError(res.err)
		s.state.Remediation = s.state.Category.Message()
		return
	}
	s.state.Response = res.text
	s.state.Prompt = ""
	if err := s.addHistory(res.prompt, res.text); err != nil {
		s.logger.Warn("failed to record history", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Session) addHistory(prompt, response string) error {
	if _, added, err := s.history.Add(prompt, response); err != nil || !added {
		return err
	}
	entries, err := s.history.Entries()
	if err != nil {
		return err
	}
	s.state.History = entries
	return nil
}

// savePreference updates the in-memory view first; a failed write is logged
// and the value still applies for this session.
func (s *Session) savePreference(key domain.PreferenceKey, value string) error {
	if !domain.IsScalarPreference(string(key)) {
		return fmt.Errorf("unknown preference %q", key)
	}
	s.raw[string(key)] = value
	s.state.applyPreferences(domain.DecodePreferences(s.raw))
	if err := s.prefs.Set(string(key), value); err != nil {
		s.logger.Warn("failed to save preference", map[string]interface{}{"key": string(key), "error": err.Error()})
	}
	return nil
}

package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/doeshing/saurus-go/internal/app"
	"github.com/doeshing/saurus-go/internal/application/session"
	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/infrastructure/cli/ui"
)

type panelKind int

const (
	panelNone panelKind = iota
	panelActions
	panelPaste
	panelHistory
	panelHelp
	panelQuit
)

// panelInput is one parsed line typed into the panel.
type panelInput struct {
	kind    panelKind
	actions []session.Action
}

const panelHelpText = `Type a question and press enter to ask it.
  :context <text>   set context for the next prompt (no text clears it)
  :paste            use the clipboard text as context
  :engine <name>    switch engine (gemini|ollama)
  :model <name>     choose the local model
  :capture <mode>   screen capture with each prompt (none|window|desktop)
  :key <api key>    save the Gemini API key
  :history          show recent prompts
  :clear            clear history
  :help             show this help
  :quit             leave the panel`

// NewPanelCommand runs the interactive panel: a session driven by stdin and
// the hotkey trigger.
func NewPanelCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "panel",
		Short: "Open the interactive assistant panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPanel(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), container)
		},
	}
}

func runPanel(parent context.Context, in io.Reader, out io.Writer, container *app.Container) error {
	sess, err := container.NewSession()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = sess.Run(ctx)
	}()

	view := ui.NewPanelView(out)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case st := <-sess.Updates():
				view.Render(st)
			}
		}
	}()
	defer func() {
		cancel()
		wg.Wait()
		view.Close()
	}()

	desk := container.NewPlatform()
	defer desk.Close()
	combo := container.Config.GetHotkeyCombo()
	if err := desk.RegisterHotkey(combo, func() {
		text, err := desk.ReadClipboardText()
		if err != nil {
			container.Logger.Warn("hotkey clipboard read failed", map[string]interface{}{"error": err.Error()})
			return
		}
		_ = sess.Dispatch(ctx, session.SetContext{Text: text})
	}); err != nil {
		fmt.Fprintf(out, "warning: hotkey %s unavailable: %v\n", combo, err)
	} else {
		fmt.Fprintf(out, "hotkey %s armed (saurus trigger), type :help for commands\n", combo)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = l
		}

		input, err := parsePanelLine(line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		switch input.kind {
		case panelQuit:
			return nil
		case panelHelp:
			fmt.Fprintln(out, panelHelpText)
		case panelHistory:
			if err := listHistoryEntries(out, container, "", domain.DefaultHistoryLimit, false); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case panelPaste:
			text, err := desk.ReadClipboardText()
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			dispatchPanel(ctx, out, sess, session.SetContext{Text: text})
		case panelActions:
			dispatchPanel(ctx, out, sess, input.actions...)
		}
	}
}

func dispatchPanel(ctx context.Context, out io.Writer, sess *session.Session, actions ...session.Action) {
	for _, a := range actions {
		err := sess.Dispatch(ctx, a)
		switch {
		case err == nil:
		case ui.IsBusy(err):
			fmt.Fprintln(out, "still working on the previous question")
			return
		case errors.Is(err, context.Canceled), errors.Is(err, session.ErrStopped):
			return
		default:
			fmt.Fprintf(out, "error: %v\n", err)
			return
		}
	}
}

// parsePanelLine turns one line of panel input into session actions.
func parsePanelLine(line string) (panelInput, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return panelInput{kind: panelNone}, nil
	}
	if !strings.HasPrefix(line, ":") {
		return panelInput{kind: panelActions, actions: []session.Action{session.SubmitPrompt{Prompt: line}}}, nil
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	one := func(a session.Action) (panelInput, error) {
		return panelInput{kind: panelActions, actions: []session.Action{a}}, nil
	}

	switch strings.ToLower(name) {
	case "q", "quit", "exit":
		return panelInput{kind: panelQuit}, nil
	case "h", "help", "?":
		return panelInput{kind: panelHelp}, nil
	case "history":
		return panelInput{kind: panelHistory}, nil
	case "paste":
		return panelInput{kind: panelPaste}, nil
	case "context":
		return one(session.SetContext{Text: arg})
	case "clear":
		return one(session.ClearHistory{})
	case "engine":
		engine, err := domain.ParseEngine(arg)
		if err != nil || arg == "" {
			return panelInput{}, fmt.Errorf("usage: :engine gemini|ollama")
		}
		return one(session.SelectEngine{Engine: engine})
	case "model":
		if arg == "" {
			return panelInput{}, fmt.Errorf("usage: :model <name>")
		}
		return one(session.SavePreference{Key: domain.PrefLocalModel, Value: arg})
	case "key":
		if arg == "" {
			return panelInput{}, fmt.Errorf("usage: :key <api key>")
		}
		return one(session.SavePreference{Key: domain.PrefAPIKey, Value: arg})
	case "capture":
		mode, err := domain.ParseCaptureMode(arg)
		if err != nil {
			return panelInput{}, err
		}
		return panelInput{kind: panelActions, actions: []session.Action{
			session.SavePreference{Key: domain.PrefCaptureWindow, Value: domain.FormatBool(mode == domain.CaptureWindow)},
			session.SavePreference{Key: domain.PrefCaptureDesktop, Value: domain.FormatBool(mode == domain.CaptureDesktop)},
		}}, nil
	default:
		return panelInput{}, fmt.Errorf("unknown command :%s (try :help)", name)
	}
}

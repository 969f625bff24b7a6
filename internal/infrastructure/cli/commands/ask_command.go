package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/saurus-go/internal/app"
	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/infrastructure/cli/ui"
)

type askOptions struct {
	context          string
	engine           string
	model            string
	capture          string
	clipboardContext bool
	copyAnswer       bool
	pasteAnswer      bool
	noHistory        bool
}

// NewAskCommand sends one prompt to the backend and prints the answer.
func NewAskCommand(container *app.Container) *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Ask the assistant a question",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, container, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.context, "context", "c", "", "Extra context text sent with the prompt")
	cmd.Flags().StringVarP(&opts.engine, "engine", "e", "", "Override the engine (gemini|ollama)")
	cmd.Flags().StringVar(&opts.model, "model", "", "Override the local model for the ollama engine")
	cmd.Flags().StringVar(&opts.capture, "capture", "", "Override screen capture (none|window|desktop)")
	cmd.Flags().BoolVar(&opts.clipboardContext, "clipboard-context", false, "Use the clipboard text as context")
	cmd.Flags().BoolVar(&opts.copyAnswer, "copy", false, "Copy the answer to the clipboard")
	cmd.Flags().BoolVar(&opts.pasteAnswer, "paste", false, "Paste the answer into the focused app (implies --copy)")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record this prompt in history")

	return cmd
}

func runAsk(cmd *cobra.Command, container *app.Container, prompt string, opts askOptions) error {
	if strings.TrimSpace(prompt) == "" {
		return errors.New(ErrPromptRequired)
	}

	req, err := buildPromptRequest(container, prompt, opts)
	if err != nil {
		return err
	}

	spinner := ui.NewSpinner(cmd.ErrOrStderr(), "thinking")
	spinner.Start()
	answer, err := container.Assistant.Ask(cmd.Context(), req)
	spinner.Stop()
	if err != nil {
		ui.RenderFailure(cmd.ErrOrStderr(), err)
		return err
	}

	ui.RenderAnswer(cmd.OutOrStdout(), answer)

	if !opts.noHistory && container.History != nil {
		if _, _, err := container.History.Add(req.Prompt, answer); err != nil {
			container.Logger.Warn("history write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	switch {
	case opts.pasteAnswer:
		if err := container.Paster.Paste(cmd.Context(), answer); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: paste failed: %v\n", err)
		}
	case opts.copyAnswer:
		if err := container.Clipboard.Copy(answer); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: copy failed: %v\n", err)
		}
	}
	return nil
}

// buildPromptRequest layers flags over the saved preferences.
func buildPromptRequest(container *app.Container, prompt string, opts askOptions) (domain.PromptRequest, error) {
	raw, err := container.Preferences.All()
	if err != nil {
		return domain.PromptRequest{}, fmt.Errorf("failed to read preferences: %w", err)
	}
	prefs := domain.DecodePreferences(raw)

	req := domain.PromptRequest{
		Prompt:      prompt,
		Context:     opts.context,
		APIKey:      prefs.APIKey,
		Engine:      prefs.Engine,
		LocalModel:  prefs.LocalModel,
		CaptureMode: prefs.CaptureMode(),
	}

	if opts.engine != "" {
		if req.Engine, err = domain.ParseEngine(opts.engine); err != nil {
			return domain.PromptRequest{}, err
		}
	}
	if opts.model != "" {
		req.LocalModel = opts.model
	}
	if opts.capture != "" {
		if req.CaptureMode, err = domain.ParseCaptureMode(opts.capture); err != nil {
			return domain.PromptRequest{}, err
		}
	}
	if opts.clipboardContext && req.Context == "" {
		text, err := container.Clipboard.ReadText()
		if err != nil {
			return domain.PromptRequest{}, fmt.Errorf("failed to read clipboard: %w", err)
		}
		req.Context = text
	}
	return req, nil
}

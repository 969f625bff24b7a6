package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/saurus-go/internal/app"
	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/infrastructure/cli/helpers"
)

// NewOnboardCommand walks the user through engine, credential, model and
// capture choices and marks onboarding complete.
func NewOnboardCommand(container *app.Container) *cobra.Command {
	var (
		force  bool
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set up the engine, API key and screen capture",
		Long: `Set up Saurus preferences interactively.

The answers are saved to the preference store and take effect on the
next prompt. Run 'saurus doctor' afterwards to check the backend install.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnboarding(cmd, container, force, verify)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Run again even if onboarding is already complete")
	cmd.Flags().BoolVar(&verify, "verify", true, "Check the Gemini API key online before saving")

	return cmd
}

func runOnboarding(cmd *cobra.Command, container *app.Container, force, verify bool) error {
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	raw, err := container.Preferences.All()
	if err != nil {
		return fmt.Errorf("failed to read preferences: %w", err)
	}
	current := domain.DecodePreferences(raw)

	if current.OnboardingComplete && !force {
		if !helpers.PromptForYesNo(out, reader, "Onboarding is already complete. Run it again?", false) {
			fmt.Fprintln(out, MsgOnboardCancelled)
			return nil
		}
	}

	updates := promptForOnboarding(cmd.Context(), out, reader, container, current, verify)
	updates[domain.PrefOnboardingComplete] = domain.FormatBool(true)

	for _, key := range domain.ScalarPreferenceKeys {
		value, ok := updates[key]
		if !ok {
			continue
		}
		if err := container.Preferences.Set(string(key), value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	displayOnboardingSummary(out, domain.DecodePreferences(mergePreferences(raw, updates)))
	return nil
}

func promptForOnboarding(ctx context.Context, out io.Writer, reader *bufio.Reader, container *app.Container, current domain.Preferences, verify bool) map[domain.PreferenceKey]string {
	updates := make(map[domain.PreferenceKey]string)

	engine := helpers.PromptForChoice(out, reader, "Engine",
		[]string{string(domain.EngineGemini), string(domain.EngineOllama)}, string(current.Engine))
	updates[domain.PrefEngine] = engine

	if domain.Engine(engine) == domain.EngineGemini {
		key := helpers.PromptForString(out, reader, "Gemini API key", current.APIKey, domain.MaskSecret(current.APIKey))
		if key != "" && key != current.APIKey && verify && container.Doctor != nil && container.Doctor.Verifier != nil {
			vctx, cancel := context.WithTimeout(ctx, domain.DefaultDoctorTimeout)
			if err := container.Doctor.Verifier.Verify(vctx, key); err != nil {
				fmt.Fprintf(out, "warning: %v\n", err)
			} else {
				fmt.Fprintln(out, "API key verified.")
			}
			cancel()
		}
		updates[domain.PrefAPIKey] = key
	} else {
		model := helpers.PromptForString(out, reader, "Local model", current.LocalModel, current.LocalModel)
		updates[domain.PrefLocalModel] = model
		checkLocalModel(ctx, out, container, model)
	}

	mode := helpers.PromptForChoice(out, reader, "Screen capture with each prompt",
		[]string{string(domain.CaptureNone), string(domain.CaptureWindow), string(domain.CaptureDesktop)},
		string(current.CaptureMode()))
	updates[domain.PrefCaptureWindow] = domain.FormatBool(domain.CaptureMode(mode) == domain.CaptureWindow)
	updates[domain.PrefCaptureDesktop] = domain.FormatBool(domain.CaptureMode(mode) == domain.CaptureDesktop)

	return updates
}

func checkLocalModel(ctx context.Context, out io.Writer, container *app.Container, model string) {
	if container.Models == nil {
		return
	}
	lctx, cancel := context.WithTimeout(ctx, domain.DefaultDoctorTimeout)
	defer cancel()
	models, err := container.Models.List(lctx)
	if err != nil {
		fmt.Fprintf(out, "warning: could not reach Ollama: %v\n", err)
		return
	}
	if !domain.HasLocalModel(models, model) {
		fmt.Fprintf(out, "%s is not installed yet. Run: saurus models pull %s\n", model, model)
	}
}

func mergePreferences(raw map[string]string, updates map[domain.PreferenceKey]string) map[string]string {
	merged := make(map[string]string, len(raw)+len(updates))
	for k, v := range raw {
		merged[k] = v
	}
	for k, v := range updates {
		merged[string(k)] = v
	}
	return merged
}

func displayOnboardingSummary(out io.Writer, prefs domain.Preferences) {
	fmt.Fprintln(out, "\n✓ Onboarding complete")
	fmt.Fprintf(out, "  engine:  %s\n", prefs.Engine)
	if prefs.Engine.IsLocal() {
		fmt.Fprintf(out, "  model:   %s\n", prefs.LocalModel)
	} else {
		fmt.Fprintf(out, "  api key: %s\n", domain.MaskSecret(prefs.APIKey))
	}
	fmt.Fprintf(out, "  capture: %s\n", prefs.CaptureMode())
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  saurus doctor          check the backend install")
	fmt.Fprintln(out, "  saurus \"what is this\"  ask a question")
	fmt.Fprintln(out, "  saurus panel           open the interactive panel")
}

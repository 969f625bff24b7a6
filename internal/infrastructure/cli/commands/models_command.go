package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/saurus-go/internal/app"
	"github.com/doeshing/saurus-go/internal/domain"
)

// NewModelsCommand creates the models command with all subcommands
func NewModelsCommand(container *app.Container) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Manage local models for the ollama engine",
	}

	modelsCmd.AddCommand(
		newModelsListCommand(container),
		newModelsPullCommand(container),
		newModelsUseCommand(container),
	)

	return modelsCmd
}

func newModelsListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List models installed on the Ollama server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listModels(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

func newModelsPullCommand(container *app.Container) *cobra.Command {
	var use bool

	cmd := &cobra.Command{
		Use:   "pull <name>",
		Short: "Download a model to the Ollama server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pullModel(cmd.Context(), cmd.OutOrStdout(), container, args[0]); err != nil {
				return err
			}
			if use {
				return useModel(cmd.OutOrStdout(), container, args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&use, "use", false, "Select the model once the download finishes")
	return cmd
}

func newModelsUseCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Select the model sent with --ollama-model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), domain.DefaultDoctorTimeout)
			defer cancel()
			if models, err := container.Models.List(ctx); err == nil && !domain.HasLocalModel(models, args[0]) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is not installed; run `saurus models pull %s`\n", args[0], args[0])
			}
			return useModel(cmd.OutOrStdout(), container, args[0])
		},
	}
}

func listModels(ctx context.Context, out io.Writer, container *app.Container) error {
	if container.Models == nil {
		return errors.New("model catalog unavailable")
	}
	models, err := container.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	if len(models) == 0 {
		fmt.Fprintln(out, MsgNoLocalModels)
		return nil
	}

	selected := ""
	if raw, err := container.Preferences.All(); err == nil {
		selected = domain.DecodePreferences(raw).LocalModel
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tMODIFIED\tSELECTED")
	for _, m := range models {
		marker := ""
		if domain.HasLocalModel([]domain.LocalModel{m}, selected) {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Name, humanize.Bytes(uint64(m.Size)), humanize.Time(m.ModifiedAt), marker)
	}
	return tw.Flush()
}

func pullModel(ctx context.Context, out io.Writer, container *app.Container, name string) error {
	if container.Models == nil {
		return errors.New("model catalog unavailable")
	}
	lastStatus := ""
	err := container.Models.Pull(ctx, name, func(p domain.PullProgress) {
		if p.Total > 0 {
			fmt.Fprintf(out, "\r%-24s %5.1f%% of %s", p.Status, p.Percent(), humanize.Bytes(uint64(p.Total)))
			lastStatus = p.Status
			return
		}
		if p.Status != lastStatus {
			if lastStatus != "" {
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, p.Status)
			lastStatus = p.Status
		}
	})
	if lastStatus != "" {
		fmt.Fprintln(out)
	}
	if err != nil {
		return fmt.Errorf("failed to pull %s: %w", name, err)
	}
	fmt.Fprintf(out, "Model %s is ready.\n", name)
	return nil
}

func useModel(out io.Writer, container *app.Container, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("model name required")
	}
	if err := container.Preferences.Set(string(domain.PrefLocalModel), name); err != nil {
		return fmt.Errorf("failed to save model preference: %w", err)
	}
	fmt.Fprintf(out, "Local model set to %s.\n", name)
	return nil
}

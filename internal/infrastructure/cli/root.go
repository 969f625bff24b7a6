package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/saurus-go/internal/app"
	"github.com/doeshing/saurus-go/internal/infrastructure/cli/commands"
	"github.com/doeshing/saurus-go/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The returned cleanup releases the
// container and must run after the command finishes.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, func(), error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := container.Close(); err != nil {
			container.Logger.Warn("shutdown", map[string]interface{}{"error": err.Error()})
		}
	}

	askCmd := commands.NewAskCommand(container)

	root := &cobra.Command{
		Use:     "saurus [prompt]",
		Short:   "Saurus - screen-aware desktop assistant",
		Long:    "Saurus sends a prompt, optional context and a screenshot to the local Saurus backend and prints the answer.",
		Version: version.String(),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return askCmd.RunE(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&opts.Verbose, "verbose", opts.Verbose, "Log to stderr (also SAURUS_DEBUG=1)")

	// Bare "saurus <prompt>" behaves like "saurus ask <prompt>".
	root.Flags().AddFlagSet(askCmd.Flags())

	root.AddCommand(
		askCmd,
		commands.NewPanelCommand(container),
		commands.NewTriggerCommand(container),
		commands.NewOnboardCommand(container),
		commands.NewPrefsCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewModelsCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root, cleanup, nil
}

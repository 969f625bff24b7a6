package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doeshing/saurus-go/internal/app"
	"github.com/doeshing/saurus-go/internal/domain"
)

// NewPrefsCommand exposes the persisted scalar preferences.
func NewPrefsCommand(container *app.Container) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect and change saved preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPreferences(cmd.OutOrStdout(), container)
		},
	}

	prefsCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all preferences (the API key is masked)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return listPreferences(cmd.OutOrStdout(), container)
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one preference",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !domain.IsScalarPreference(args[0]) {
					return fmt.Errorf("unknown preference %q", args[0])
				}
				value, _, err := container.Preferences.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Save one preference",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, err := domain.NormalizePreference(args[0], args[1])
				if err != nil {
					return err
				}
				if err := container.Preferences.Set(args[0], value); err != nil {
					return fmt.Errorf("failed to save %s: %w", args[0], err)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "unset <key>",
			Short: "Remove one preference so its default applies",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !domain.IsScalarPreference(args[0]) {
					return fmt.Errorf("unknown preference %q", args[0])
				}
				return container.Preferences.Delete(args[0])
			},
		},
	)

	return prefsCmd
}

func listPreferences(out io.Writer, container *app.Container) error {
	raw, err := container.Preferences.All()
	if err != nil {
		return fmt.Errorf("failed to read preferences: %w", err)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, key := range domain.ScalarPreferenceKeys {
		value, ok := raw[string(key)]
		switch {
		case !ok:
			value = "(unset)"
		case key == domain.PrefAPIKey:
			value = domain.MaskSecret(value)
		}
		fmt.Fprintf(tw, "%s\t%s\n", key, value)
	}
	fmt.Fprintf(tw, "store\t%s\n", container.Preferences.Path())
	return tw.Flush()
}

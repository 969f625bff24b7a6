package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/saurus-go/internal/app"
	"github.com/doeshing/saurus-go/internal/infrastructure/platform"
)

// NewTriggerCommand fires a hotkey at a running panel. Bind it to a global
// shortcut with the desktop's keyboard settings or skhd.
func NewTriggerCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "trigger [combo]",
		Short: "Fire the panel hotkey (defaults to the configured combo)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			combo := container.Config.GetHotkeyCombo()
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				combo = args[0]
			}
			return platform.FireTrigger(container.TriggerDir, combo)
		},
	}
}

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/saurus-go/internal/app"
	"github.com/doeshing/saurus-go/internal/application/doctor"
	"github.com/doeshing/saurus-go/internal/infrastructure/cli/ui"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	var opts doctor.Options

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose backend, credentials and local models",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Doctor == nil {
				return errors.New(ErrDoctorServiceUnavailable)
			}
			out := cmd.OutOrStdout()

			if container.Locator != nil {
				fmt.Fprintln(out, "Backend search locations:")
				for _, c := range container.Locator.Candidates() {
					mark := " "
					if c.Verified {
						mark = "*"
					}
					fmt.Fprintf(out, "  %s %-12s %s\n", mark, c.Source, c.Dir)
				}
				fmt.Fprintln(out)
			}

			report, err := container.Doctor.Run(cmd.Context(), opts)
			ui.RenderHealthReport(out, report)
			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			if n := report.Failed(); n > 0 {
				return fmt.Errorf("%d check(s) failed", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Online, "online", false, "Verify the Gemini API key with a live request")
	return cmd
}

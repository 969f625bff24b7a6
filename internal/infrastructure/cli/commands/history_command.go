package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/saurus-go/internal/app"
	"github.com/doeshing/saurus-go/internal/domain"
	"github.com/doeshing/saurus-go/internal/infrastructure/cli/ui"
	"github.com/doeshing/saurus-go/internal/infrastructure/history"
)

const historyPreviewLength = 72

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect answered prompts",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var (
		limit int
		query string
		full  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, query, limit, full)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	cmd.Flags().StringVar(&query, "search", "", "Only show entries containing this text")
	cmd.Flags().BoolVar(&full, "full", false, "Print complete prompts and responses")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			n, err := store.ExportJSONL(args[0])
			if err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", n, args[0])
			return nil
		},
	}
}

func historyStore(container *app.Container) (*history.Repository, error) {
	if container.History == nil {
		return nil, errors.New(ErrHistoryStoreUnavailable)
	}
	return container.History, nil
}

func listHistoryEntries(out io.Writer, container *app.Container, query string, limit int, full bool) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	entries, err := store.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve history: %w", err)
	}
	matches := domain.NewHistory(entries, domain.MaxHistoryEntries).Search(query, limit)
	if len(matches) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	for _, e := range matches {
		if full {
			fmt.Fprintf(out, "%s (%s)\n> %s\n%s\n\n",
				e.CreatedAt.Format(TimestampFormat), humanize.Time(e.CreatedAt), e.Prompt, e.Response)
			continue
		}
		fmt.Fprintf(out, "%-14s | %s | %s\n",
			humanize.Time(e.CreatedAt),
			ui.Preview(e.Prompt, historyPreviewLength/2),
			ui.Preview(e.Response, historyPreviewLength))
	}
	return nil
}

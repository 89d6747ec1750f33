package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"listy/cmd/listy/output"
	"listy/internal/state"
)

// listsCmd shows the known named lists with their todo counts
var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Show named lists and their todo counts",
	Long: `Show every named list known to the server with its todo count.

Counts are best effort: a list whose todos cannot be fetched is shown
with a count of 0 rather than failing the whole command.

Examples:
  # Show all lists
  listy lists

  # Machine-readable output
  listy lists --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		registry := container.Registry
		if err := registry.RefreshNow(ctx); err != nil {
			return fmt.Errorf("failed to fetch lists: %w", err)
		}

		lists := registry.Lists()

		switch formatter.Format() {
		case output.FormatJSON, output.FormatYAML:
			type listEntry struct {
				ID    string `json:"id" yaml:"id"`
				Name  string `json:"name" yaml:"name"`
				Count int    `json:"count" yaml:"count"`
			}
			entries := make([]listEntry, 0, len(lists))
			for _, id := range lists {
				entries = append(entries, listEntry{
					ID:    id,
					Name:  state.ListDisplayName(id),
					Count: registry.Count(id),
				})
			}
			return formatter.Print(entries)

		case output.FormatFZF:
			for _, id := range lists {
				printer.Println("%s\t%s", id, state.ListDisplayName(id))
			}
			return nil

		default:
			if len(lists) == 0 {
				printer.Subtle("No named lists. Todos live in the main collection.")
				return nil
			}

			rows := make([][]string, 0, len(lists))
			for _, id := range lists {
				rows = append(rows, []string{
					id,
					state.ListDisplayName(id),
					strconv.Itoa(registry.Count(id)),
				})
			}
			printer.Table([]string{"ID", "Name", "Todos"}, rows)
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(listsCmd)
}

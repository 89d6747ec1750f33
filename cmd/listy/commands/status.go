package commands

import (
	"github.com/spf13/cobra"
)

// statusCmd checks connectivity to the API server
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the API server connection",
	Long: `Check that the configured API server is reachable and healthy.

Examples:
  listy status
  listy status --api-url https://todos.example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		if err := container.Client.Health(ctx); err != nil {
			printer.Error("%s is not reachable: %v", container.Client.BaseURL(), err)
			return err
		}

		printer.Success("%s is healthy", container.Client.BaseURL())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"listy/cmd/listy/output"
	"listy/internal/api"
	"listy/internal/di"
	"listy/internal/infrastructure/config"
	"listy/internal/state"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// Global flags
	apiURL       string
	outputFormat string
	configPath   string
	quiet        bool

	// Shared instances
	cfg       *config.Config
	container *di.Container
	printer   *output.Printer
	formatter *output.Formatter
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "listy",
	Short: "Terminal client for your task-list server",
	Long: `listy is a terminal client for a personal task-list server.

Features:
  - Todos grouped into named lists with a shared main collection
  - Pending/completed filters and per-list views
  - AI goal breakdown: turn a goal into reviewable task drafts
  - AI subtask generation for existing tasks
  - Interactive TUI and comprehensive CLI

Examples:
  # Launch interactive TUI
  listy
  listy tui

  # List todos
  listy todo list
  listy todo list --pending
  listy todo list --list trip_planning

  # Add and complete todos
  listy todo add "Buy groceries"
  listy todo done 42

  # Break a goal into tasks
  listy ai breakdown "Plan a trip" --create --list trip_planning`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize configuration
		var loader *config.Loader
		var err error
		if configPath != "" {
			loader = config.NewLoaderAt(configPath)
		} else {
			loader, err = config.NewLoader()
			if err != nil {
				return fmt.Errorf("failed to create config loader: %w", err)
			}
		}

		// Initialize DI container
		container, err = di.InitializeContainerWith(loader)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		cfg = container.Config

		// The --api-url flag wins over both the config file and the
		// environment override.
		if apiURL != "" {
			cfg.API.BaseURL = api.NormalizeBaseURL(apiURL)
			container.Client = api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
			container.Store = state.NewStore(container.Client)
			container.Registry = state.NewRegistry(container.Client)
		}

		// Initialize output formatter
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		formatter = output.NewFormatter(format, os.Stdout)
		printer = output.DefaultPrinter()

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printer := output.DefaultPrinter()
		printer.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api-url", "u", "", "API server origin (default: config file or LISTY_API_URL)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml, fzf")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	// Handle version flag
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			printVersion()
			return
		}

		// Default behavior: show help or launch TUI
		if len(args) == 0 {
			// Launch TUI
			if err := tuiCmd.RunE(cmd, args); err != nil {
				printer.Error("%v", err)
				os.Exit(1)
			}
		} else {
			cmd.Help()
		}
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("listy version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Built:      %s\n", BuildDate)
}

// getContext returns a context for command execution
func getContext() context.Context {
	return context.Background()
}

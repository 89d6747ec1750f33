package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"listy/cmd/listy/output"
	"listy/internal/api"
)

// aiCmd groups the AI generation commands
var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Generate tasks with AI",
	Long: `Generate task suggestions from a goal, or break an existing todo
into subtasks.

Generated tasks are printed as suggestions by default. Pass --create to
materialize them into real todos in one call.

Examples:
  # Suggest tasks for a goal
  listy ai breakdown "Plan a weekend trip"

  # Suggest and immediately create them in a list
  listy ai breakdown "Plan a weekend trip" --create --list trip_planning

  # Break an existing todo into subtasks
  listy ai subtasks 42

  # Create the subtasks alongside the parent
  listy ai subtasks 42 --create`,
}

// aiBreakdownCmd expands a goal into task suggestions
var aiBreakdownCmd = &cobra.Command{
	Use:   "breakdown <goal>",
	Short: "Break a goal into task suggestions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		goal := strings.Join(args, " ")
		if strings.TrimSpace(goal) == "" {
			return fmt.Errorf("goal cannot be empty")
		}

		create, _ := cmd.Flags().GetBool("create")
		listID, _ := cmd.Flags().GetString("list")

		if !quiet {
			printer.Info("Generating tasks for: %s", goal)
		}

		drafts, err := container.Client.GenerateBreakdown(ctx, goal)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		if len(drafts) == 0 {
			printer.Subtle("No tasks suggested for this goal.")
			return nil
		}

		if create {
			return createDrafts(drafts, normalizeList(listID))
		}
		return printDrafts(drafts)
	},
}

// aiSubtasksCmd breaks an existing todo into subtasks
var aiSubtasksCmd = &cobra.Command{
	Use:   "subtasks <id>",
	Short: "Break an existing todo into subtasks",
	Long: `Break an existing todo into smaller subtasks.

Subtasks are created in the same list as the parent todo. An empty
result means the task is already small enough to do as-is.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		id, err := parseTodoID(args[0])
		if err != nil {
			return err
		}

		parent, err := findTodo(id)
		if err != nil {
			return err
		}

		create, _ := cmd.Flags().GetBool("create")

		if !quiet {
			printer.Info("Generating subtasks for: %s", parent.Item)
		}

		drafts, err := container.Client.GenerateSubtasks(ctx, parent.Item)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		if len(drafts) == 0 {
			printer.Subtle("This task looks simple enough to complete as-is.")
			return nil
		}

		if create {
			// Subtasks land next to their parent.
			return createDrafts(drafts, parent.ListID)
		}
		return printDrafts(drafts)
	},
}

// findTodo locates a todo by ID across the whole collection
func findTodo(id int) (*api.Todo, error) {
	todos, err := container.Client.Todos(getContext())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch todos: %w", err)
	}
	for i := range todos {
		if todos[i].ID == id {
			return &todos[i], nil
		}
	}
	return nil, fmt.Errorf("todo %d not found", id)
}

// createDrafts materializes drafts into real todos
func createDrafts(drafts []api.TaskDraft, listID *string) error {
	todos, err := container.Client.CreateGenerated(getContext(), drafts, listID)
	if err != nil {
		return fmt.Errorf("failed to create tasks: %w", err)
	}

	if quiet {
		for _, todo := range todos {
			printer.Println("%d", todo.ID)
		}
		return nil
	}

	printer.Success("Created %d task(s)", len(todos))
	return printTodos(todos)
}

// printDrafts renders suggestions in the configured output format
func printDrafts(drafts []api.TaskDraft) error {
	switch formatter.Format() {
	case output.FormatJSON, output.FormatYAML:
		return formatter.Print(drafts)

	case output.FormatFZF:
		for _, draft := range drafts {
			printer.Println("%s", draft.Text)
		}
		return nil

	default:
		rows := make([][]string, 0, len(drafts))
		for _, draft := range drafts {
			rows = append(rows, []string{
				draft.Text,
				draft.Priority,
				draft.EstimatedTime,
				draft.Category,
			})
		}
		printer.Table([]string{"Task", "Priority", "Time", "Category"}, rows)
		printer.Subtle("Suggestions only. Re-run with --create to add them.")
		return nil
	}
}

func init() {
	aiBreakdownCmd.Flags().Bool("create", false, "Create the suggested tasks immediately")
	aiBreakdownCmd.Flags().StringP("list", "l", "", "List to create the tasks in")

	aiSubtasksCmd.Flags().Bool("create", false, "Create the subtasks immediately")

	aiCmd.AddCommand(aiBreakdownCmd)
	aiCmd.AddCommand(aiSubtasksCmd)

	rootCmd.AddCommand(aiCmd)
}

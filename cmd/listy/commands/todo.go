package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"listy/cmd/listy/output"
	"listy/internal/api"
	"listy/internal/state"
	"listy/pkg/slug"
)

// todoCmd represents the todo command
var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage todos",
	Long: `Manage todos - create, update, complete, and query them.

Todos live either in the main collection or in a named list. Each todo
has a numeric ID, text, a done flag, and optional priority, estimated
time, and category.

Examples:
  # List all todos
  listy todo list

  # List only pending todos
  listy todo list --pending

  # List todos in a named list
  listy todo list --list trip_planning

  # Create a todo
  listy todo add "Buy groceries"
  listy todo add "Book hotel" --list trip_planning

  # Complete / reopen a todo
  listy todo done 42
  listy todo undone 42

  # Flip completion
  listy todo toggle 42

  # Edit the text
  listy todo edit 42 "Buy groceries and milk"

  # Delete a todo
  listy todo rm 42`,
}

// todoListCmd lists todos
var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Long: `List todos with optional filtering.

Output formats:
  text - Human-readable table (default)
  json - JSON output for scripting
  yaml - YAML output
  fzf  - ID and text (tab-separated)

Examples:
  # List all todos
  listy todo list

  # List only pending todos
  listy todo list --pending

  # List only completed todos
  listy todo list --completed

  # List todos in a named list (filters combine)
  listy todo list --list trip_planning --pending

  # List only the main collection
  listy todo list --main

  # Pipe to fzf and toggle the selected todo
  listy todo list --output fzf | fzf | cut -f1 | xargs listy todo toggle`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		pending, _ := cmd.Flags().GetBool("pending")
		completed, _ := cmd.Flags().GetBool("completed")
		mainOnly, _ := cmd.Flags().GetBool("main")
		listID, _ := cmd.Flags().GetString("list")

		if pending && completed {
			return fmt.Errorf("--pending and --completed are mutually exclusive")
		}
		if mainOnly && listID != "" {
			return fmt.Errorf("--main and --list are mutually exclusive")
		}

		var todos []api.Todo
		var err error
		switch {
		case listID != "":
			todos, err = container.Client.TodosByList(ctx, slug.Generate(listID))
		case pending:
			todos, err = container.Client.PendingTodos(ctx)
		case completed:
			todos, err = container.Client.CompletedTodos(ctx)
		default:
			todos, err = container.Client.Todos(ctx)
		}
		if err != nil {
			return fmt.Errorf("failed to list todos: %w", err)
		}

		// The list endpoint has no pending/completed variants, so the
		// status filter is applied client-side there.
		filter := state.FilterAll
		if pending {
			filter = state.FilterPending
		} else if completed {
			filter = state.FilterCompleted
		}

		filtered := make([]api.Todo, 0, len(todos))
		for _, todo := range todos {
			if !filter.Matches(todo) {
				continue
			}
			if mainOnly && !todo.InMainList() {
				continue
			}
			filtered = append(filtered, todo)
		}

		return printTodos(filtered)
	},
}

// printTodos renders todos in the configured output format
func printTodos(todos []api.Todo) error {
	switch formatter.Format() {
	case output.FormatJSON, output.FormatYAML:
		return formatter.Print(todos)

	case output.FormatFZF:
		for _, todo := range todos {
			printer.Println("%d\t%s", todo.ID, todo.Item)
		}
		return nil

	default:
		if len(todos) == 0 {
			printer.Subtle("No todos found.")
			return nil
		}

		rows := make([][]string, 0, len(todos))
		for _, todo := range todos {
			status := " "
			if todo.Done {
				status = "✓"
			}
			rows = append(rows, []string{
				strconv.Itoa(todo.ID),
				status,
				todo.Item,
				strValue(todo.Priority),
				listLabel(todo),
			})
		}
		printer.Table([]string{"ID", "✓", "Todo", "Priority", "List"}, rows)
		return nil
	}
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func listLabel(todo api.Todo) string {
	if todo.InMainList() {
		return "(main)"
	}
	return state.ListDisplayName(*todo.ListID)
}

// todoAddCmd creates a new todo
var todoAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Create a new todo",
	Long: `Create a new todo in the main collection or in a named list.

Examples:
  # Add to the main collection
  listy todo add "Buy groceries"

  # Add to a named list
  listy todo add "Book hotel" --list trip_planning`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		listID, _ := cmd.Flags().GetString("list")

		todo, err := container.Client.Create(ctx, strings.Join(args, " "), normalizeList(listID))
		if err != nil {
			return fmt.Errorf("failed to create todo: %w", err)
		}

		if quiet {
			printer.Println("%d", todo.ID)
			return nil
		}
		printer.Success("Created todo %d: %s in %s", todo.ID, todo.Item, listLabel(*todo))
		return nil
	},
}

// normalizeList turns a user-entered list name into an optional list ID.
// Empty input targets the main collection.
func normalizeList(s string) *string {
	id := slug.Generate(s)
	if id == "" {
		return nil
	}
	return &id
}

// todoDoneCmd marks a todo completed
var todoDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setDone(args[0], true)
	},
}

// todoUndoneCmd reopens a completed todo
var todoUndoneCmd = &cobra.Command{
	Use:   "undone <id>",
	Short: "Reopen a completed todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setDone(args[0], false)
	},
}

func setDone(rawID string, done bool) error {
	ctx := getContext()

	id, err := parseTodoID(rawID)
	if err != nil {
		return err
	}

	todo, err := container.Client.Update(ctx, id, api.UpdateTodoRequest{Done: &done})
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	if !quiet {
		if done {
			printer.Success("Completed todo %d: %s", todo.ID, todo.Item)
		} else {
			printer.Success("Reopened todo %d: %s", todo.ID, todo.Item)
		}
	}
	return nil
}

// todoToggleCmd flips a todo's completion state
var todoToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a todo between pending and completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		id, err := parseTodoID(args[0])
		if err != nil {
			return err
		}

		todo, err := container.Client.Toggle(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to toggle todo: %w", err)
		}

		if !quiet {
			if todo.Done {
				printer.Success("Completed todo %d: %s", todo.ID, todo.Item)
			} else {
				printer.Success("Reopened todo %d: %s", todo.ID, todo.Item)
			}
		}
		return nil
	},
}

// todoEditCmd replaces a todo's text
var todoEditCmd = &cobra.Command{
	Use:   "edit <id> <text>",
	Short: "Replace a todo's text",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		id, err := parseTodoID(args[0])
		if err != nil {
			return err
		}

		text := strings.Join(args[1:], " ")
		todo, err := container.Client.Update(ctx, id, api.UpdateTodoRequest{Item: &text})
		if err != nil {
			return fmt.Errorf("failed to update todo: %w", err)
		}

		if !quiet {
			printer.Success("Updated todo %d: %s", todo.ID, todo.Item)
		}
		return nil
	},
}

// todoRmCmd deletes a todo
var todoRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		id, err := parseTodoID(args[0])
		if err != nil {
			return err
		}

		if err := container.Client.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete todo: %w", err)
		}

		if !quiet {
			printer.Success("Deleted todo %d", id)
		}
		return nil
	},
}

func parseTodoID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid todo ID '%s': must be a number", raw)
	}
	return id, nil
}

func init() {
	todoListCmd.Flags().Bool("pending", false, "Only pending todos")
	todoListCmd.Flags().Bool("completed", false, "Only completed todos")
	todoListCmd.Flags().Bool("main", false, "Only the main collection (todos without a list)")
	todoListCmd.Flags().StringP("list", "l", "", "Only todos in the given list")

	todoAddCmd.Flags().StringP("list", "l", "", "List to add the todo to")

	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoDoneCmd)
	todoCmd.AddCommand(todoUndoneCmd)
	todoCmd.AddCommand(todoToggleCmd)
	todoCmd.AddCommand(todoEditCmd)
	todoCmd.AddCommand(todoRmCmd)

	rootCmd.AddCommand(todoCmd)
}

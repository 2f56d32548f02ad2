package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pomotodo/internal/cli/formatter"
	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add [label...]",
		Short: "Add a to-do",
		Long:  "Add a to-do. With no label on a terminal, prompts for one.",
		RunE: func(cmd *cobra.Command, args []string) error {
			label := strings.Join(args, " ")
			if len(args) == 0 {
				if !app.StdinTTY {
					return errors.New("a label is required")
				}
				if err := labelForm(&label).Run(); err != nil {
					return err
				}
			}

			todo, err := app.Todos.Create(cmd.Context(), label)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n",
				formatter.StyleBlue.Render(todo.DisplayRef()), todo.Label)
			return nil
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List to-dos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := app.Todos.List(cmd.Context(), viewFromFlags(cmd.Flags()))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTodoList(todos, time.Now()))
			return nil
		},
	}
	addViewFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive("completed", "all")
	return cmd
}

// newDoneCmd builds "done" when done is true and "undo" otherwise.
func newDoneCmd(app *App, done bool) *cobra.Command {
	use, short, verb := "done REF", "Mark a to-do as completed", "Completed"
	if !done {
		use, short, verb = "undo REF", "Move a completed to-do back to the list", "Reopened"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			todo, err := app.Todos.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			todo, err = app.Todos.SetDone(ctx, todo.ID, done)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", verb,
				formatter.StyleBlue.Render(todo.DisplayRef()), todo.Label)
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm REF",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a to-do and its pomodoro history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			todo, err := app.Todos.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Todos.Delete(ctx, todo.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n",
				formatter.StyleBlue.Render(todo.DisplayRef()), todo.Label)
			return nil
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completed pomodoros per to-do",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Focus.Stats(cmd.Context(), days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStats(stats))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "Number of days to include")
	return cmd
}

// completedErr explains why a timer cannot run on a done item.
func completedErr(t *domain.Todo) error {
	return fmt.Errorf("%s is completed; run 'pomotodo undo %d' first", t.DisplayRef(), t.Seq)
}

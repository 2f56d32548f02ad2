package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alexanderramin/pomotodo/internal/cli/formatter"
	"github.com/alexanderramin/pomotodo/internal/schedule"
	"github.com/alexanderramin/pomotodo/internal/timer"
	"github.com/spf13/cobra"
)

func newFocusCmd(app *App) *cobra.Command {
	var dur durationValue

	cmd := &cobra.Command{
		Use:   "focus REF",
		Short: "Run one pomodoro for a to-do in the foreground",
		Long: "Run one countdown for a to-do, printing the clock every second.\n" +
			"Ctrl-C abandons the run; a finished run is recorded.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			todo, err := app.Todos.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if todo.Done {
				return completedErr(todo)
			}
			seconds := dur.seconds(app.durationSeconds())
			out := cmd.OutOrStdout()
			log := app.logger().With("todo_id", todo.ID, "duration_sec", seconds)

			runCtx, finish := context.WithCancel(ctx)
			defer finish()

			loop := schedule.NewLoop()
			var tt *timer.TaskTimer
			completed := false
			render := func() {
				line := formatter.FormatFocusReadout(todo.Label, tt)
				if app.StdoutTTY {
					fmt.Fprintf(out, "\r\033[K%s", line)
					return
				}
				fmt.Fprintln(out, line)
			}
			tt, err = timer.New(seconds, loop,
				timer.WithOnRedraw(render),
				timer.WithOnComplete(func() {
					completed = true
					finish()
				}),
			)
			if err != nil {
				return err
			}
			defer tt.Destroy()

			startedAt := time.Now().UTC()
			render()
			if err := tt.Start(); err != nil {
				return err
			}
			log.Info("focus started")
			_ = loop.Run(runCtx)
			tt.Destroy()
			if app.StdoutTTY {
				fmt.Fprintln(out)
			}

			if !completed {
				log.Info("focus abandoned", "remaining_sec", tt.Remaining())
				fmt.Fprintf(out, "Stopped at %s; nothing recorded.\n", tt.DisplayText())
				return nil
			}

			if _, err := app.Focus.RecordCompletion(ctx, todo.ID, startedAt, seconds); err != nil {
				return err
			}
			log.Info("pomodoro completed", "label", todo.Label)
			app.ring()
			fmt.Fprintln(out, formatter.StyleGreen.Render(formatter.CompletionMessage(todo.Label)))
			return nil
		},
	}

	cmd.Flags().Var(&dur, "duration", "Countdown length, e.g. 25m, 90s or 300")
	return cmd
}

package cli

import (
	"io"
	"log/slog"

	"github.com/alexanderramin/pomotodo/internal/config"
	"github.com/alexanderramin/pomotodo/internal/service"
	"github.com/alexanderramin/pomotodo/internal/timer"
	"github.com/spf13/cobra"
)

// App holds the services and environment used by CLI commands and the TUI.
type App struct {
	Todos  service.TodoService
	Focus  service.FocusService
	Import service.ImportService
	Config *config.Config
	Logger *slog.Logger

	// StdinTTY and StdoutTTY are set by main from isatty checks.
	StdinTTY  bool
	StdoutTTY bool

	// Bell receives the terminal bell on completion. Nil disables it.
	Bell io.Writer
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

func (a *App) durationSeconds() int {
	if a.Config == nil {
		return timer.DefaultDurationSeconds
	}
	return a.Config.DurationSeconds()
}

func (a *App) ring() {
	if a.Bell == nil || (a.Config != nil && !a.Config.UI.Bell) {
		return
	}
	_, _ = io.WriteString(a.Bell, "\a")
}

// NewRootCmd creates the top-level "pomotodo" command and registers all
// subcommands against the provided App. Run bare on a terminal it opens
// the interactive list.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pomotodo",
		Short:         "To-do list with a pomodoro timer per item",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.StdinTTY {
				return cmd.Help()
			}
			return runTUI(app)
		},
	}

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newDoneCmd(app, true),
		newDoneCmd(app, false),
		newRemoveCmd(app),
		newFocusCmd(app),
		newStatsCmd(app),
		newImportCmd(app),
	)

	return root
}

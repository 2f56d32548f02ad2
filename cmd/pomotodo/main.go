package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/pomotodo/internal/cli"
	"github.com/alexanderramin/pomotodo/internal/config"
	"github.com/alexanderramin/pomotodo/internal/db"
	"github.com/alexanderramin/pomotodo/internal/repository"
	"github.com/alexanderramin/pomotodo/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := config.HomeDir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(home)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	// Open database
	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and services
	todoRepo := repository.NewSQLiteTodoRepo(database)
	pomodoroRepo := repository.NewSQLitePomodoroRepo(database)
	uow := db.NewSQLiteUnitOfWork(database, db.WithTxLogger(logger))
	observer := service.NewSlogUseCaseObserver(logger)

	app := &cli.App{
		Todos:  service.NewTodoService(todoRepo, uow, observer),
		Focus:  service.NewFocusService(pomodoroRepo, uow, observer),
		Import: service.NewImportService(uow, observer),
		Config: cfg,
		Logger: logger,
		Bell:   os.Stderr,
	}

	// Detect interactive terminal for the TUI entrypoint and live redraws.
	app.StdinTTY = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	app.StdoutTTY = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	return cli.NewRootCmd(app).Execute()
}

// openLogger writes structured logs to the configured file so they never
// interleave with the terminal UI. An empty path discards logs.
func openLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

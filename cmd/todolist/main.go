package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todolist/internal/config"
	"github.com/sandeepkv93/todolist/internal/logging"
	"github.com/sandeepkv93/todolist/internal/storage"
	"github.com/sandeepkv93/todolist/internal/store"
	"github.com/sandeepkv93/todolist/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "todolist failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	persist, err := storage.Open(cfg.Backend(), cfg.StoragePath, cfg.StorageKey, storage.WithLogger(logger))
	if err != nil {
		return err
	}
	defer persist.Close()

	st, err := store.Open(context.Background(), persist,
		store.WithLogger(logger),
		store.WithFilter(cfg.Filter()),
		store.WithSort(cfg.Sort()),
	)
	if err != nil {
		return err
	}
	logger.Info("started", "backend", cfg.StorageBackend, "tasks", st.Len())

	program := tea.NewProgram(update.NewModel(st, update.Options{
		Theme:           cfg.Theme,
		RefreshInterval: cfg.RefreshInterval(),
		Logger:          logger,
	}), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	logger.Info("stopped", "tasks", st.Len())
	return nil
}

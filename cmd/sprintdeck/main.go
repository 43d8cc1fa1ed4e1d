// Package main provides the entry point for the sprintdeck TUI.
//
// sprintdeck is a TUI kanban board for sprint-based task tracking. The
// board talks to a sprintdeckd backend and moves cards between lanes
// with optimistic status updates.
//
// Usage:
//
//	sprintdeck [options]
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sprintdeck/sprintdeck/internal/app"
	"github.com/sprintdeck/sprintdeck/internal/config"
	"github.com/sprintdeck/sprintdeck/internal/services/backend"
)

func main() {
	serverURL := flag.String("server", "", "backend URL (overrides config)")
	debugLog := flag.String("debug-log", "", "write debug logs to this file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}

	logger := buildLogger(*debugLog)

	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Server.TimeoutMs) * time.Millisecond,
	}
	client := backend.NewClient(cfg.Server.URL, httpClient, logger)

	// Restore the previous session token, if any
	if token, err := backend.LoadToken(cfg.Auth.TokenPath); err == nil && token != "" {
		client.SetToken(token)
	}

	model := app.New(cfg, app.Services{
		Tasks:    backend.NewTaskService(client),
		Auth:     backend.NewAuthService(client),
		Projects: backend.NewProjectService(client),
		Sprints:  backend.NewSprintService(client),
		Logger:   logger,
	})

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	// Persist the session for the next run
	if err := backend.SaveToken(cfg.Auth.TokenPath, client.Token()); err != nil {
		logger.Warn("failed to persist session token", "error", err)
	}
}

// buildLogger returns a file-backed logger, or a silent one. The TUI
// owns the terminal, so logs never go to stdout.
func buildLogger(path string) *slog.Logger {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/thomaskoefod/enrichreadr/internal/api"
	"github.com/thomaskoefod/enrichreadr/internal/config"
	"github.com/thomaskoefod/enrichreadr/internal/history"
	"github.com/thomaskoefod/enrichreadr/internal/logging"
	"github.com/thomaskoefod/enrichreadr/internal/tui"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	// Logs go next to the history db; stdout belongs to the TUI.
	logPath := filepath.Join(filepath.Dir(cfg.History.Path), "enrichreadr.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "creating data directory: %v\n", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := logging.New(logFile, cfg.Log.Level)

	timeout, err := cfg.API.GetTimeout()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid api timeout: %v\n", err)
		os.Exit(1)
	}
	client := api.NewClient(cfg.API.BaseURL, timeout, logger)

	// A quick liveness probe so an unreachable backend is logged before
	// the screen takes over; the TUI still starts and shows the error.
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if health, err := client.Health(ctx); err != nil {
		logger.Warn("backend not reachable at startup", "base_url", cfg.API.BaseURL, "error", err)
	} else {
		logger.Info("connected", "base_url", cfg.API.BaseURL, "backend_version", health.Version)
	}
	cancel()

	journal, err := history.New(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening history: %v\n", err)
		os.Exit(1)
	}
	defer journal.Close()

	p := tea.NewProgram(tui.New(cfg, client, journal, logger))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "running program: %v\n", err)
		os.Exit(1)
	}
}

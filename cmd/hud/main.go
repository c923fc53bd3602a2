package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"midas/internal/config"
	"midas/internal/gateway"
	"midas/internal/recorder"
	"midas/internal/util"
)

func main() {
	godotenv.Load()

	cfgPath := os.Getenv("HUD_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logPath := cfg.Logging.Path
	if logPath == "" {
		logPath = fmt.Sprintf("/tmp/midas-hud-%s.log", time.Now().Format("2006-01-02"))
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := util.NewLogger(logFile, cfg.Logging.Level)
	util.SetDefault(logger)

	gw := gateway.NewClient(cfg.Gateway.BaseURL,
		time.Duration(cfg.Gateway.TimeoutSeconds)*time.Second, logger)

	// The gateway may still be booting; probe with backoff before the panel
	// takes over the terminal. A dead gateway is not fatal; every fetch
	// failure is reported inline and retryable.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := util.Retry(ctx, 3, 250*time.Millisecond, func() error {
		return gw.Health(ctx)
	}); err != nil {
		logger.Warn("gateway health probe failed", "url", cfg.Gateway.BaseURL, "error", err)
	} else {
		logger.Info("gateway healthy", "url", cfg.Gateway.BaseURL)
	}
	cancel()

	rec, err := recorder.Open(cfg.Storage.SQLitePath)
	if err != nil {
		logger.Warn("snapshot history disabled", "path", cfg.Storage.SQLitePath, "error", err)
		rec = nil
	} else {
		defer rec.Close()
	}

	p := tea.NewProgram(
		initialModel(cfg, logger, gw, rec),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

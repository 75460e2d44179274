// Package main runs the card carousel in a terminal using the software compositor.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/shaderhub/internal/app"
	"github.com/Faultbox/shaderhub/internal/config"
	"github.com/Faultbox/shaderhub/internal/logger"
	"github.com/Faultbox/shaderhub/internal/terminal"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Save config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config written to", path)
		return
	}

	// The screen owns stdout, so logs only go to a file.
	logFile := cfg.Logging.LogFile
	if logFile == "" {
		logFile = filepath.Join(config.ConfigDir(), "carousel-term.log")
	}
	if err := logger.InitWithOptions(logger.Options{
		Level: cfg.Logging.Level,
		File:  logger.DefaultFileConfig(logFile),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== "+app.Title+" (terminal) ===", zap.String("log_file", logFile))

	if err := run(cfg); err != nil {
		logger.Error("terminal host failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("carousel closed normally")
}

func run(cfg *config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	term, err := terminal.New(cfg, screen, time.Now())
	if err != nil {
		return err
	}
	defer term.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return term.Run(ctx)
}

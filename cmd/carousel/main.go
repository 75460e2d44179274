// Package main is the entry point for the desktop card carousel.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/shaderhub/internal/app"
	"github.com/Faultbox/shaderhub/internal/config"
	"github.com/Faultbox/shaderhub/internal/desktop"
	"github.com/Faultbox/shaderhub/internal/engine/shader"
	"github.com/Faultbox/shaderhub/internal/logger"
)

func main() {
	// Parse CLI flags first
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

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== " + app.Title + " ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	d, err := desktop.New(cfg)
	if err != nil {
		var ce *shader.CompileError
		if errors.As(err, &ce) {
			logger.Error("shader build failed", zap.String("stage", ce.Stage), zap.String("log", ce.Log))
		}
		logger.Error("failed to start", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if err := d.Run(); err != nil {
		logger.Error("render loop error", zap.Error(err))
		d.Close()
		logger.Sync()
		os.Exit(1)
	}
	d.Close()

	logger.Info("carousel closed normally")
}

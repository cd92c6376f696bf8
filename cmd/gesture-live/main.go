// Package main is the entry point for the live touch viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gesture/internal/app"
	"github.com/Faultbox/midgard-gesture/internal/config"
	"github.com/Faultbox/midgard-gesture/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Gesture ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Warn("failed to save config", zap.Error(err))
		} else {
			logger.Debug("config saved", zap.String("dir", config.ConfigDir()))
		}
	}

	a, err := app.New(cfg, logger.Log)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}

	runErr := a.Run()
	a.Close()
	if runErr != nil {
		logger.Error("viewer error", zap.Error(runErr))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

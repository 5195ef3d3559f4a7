package main

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/galacticsurvivor/internal/config"
	"github.com/tomz197/galacticsurvivor/internal/loop/desktop"
	"github.com/tomz197/galacticsurvivor/internal/loop/server"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "desktop",
	})
	if level, err := log.ParseLevel(config.GetEnv("GS_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}

	tuning, err := config.TuningFromEnv("GS_TUNING")
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lobby := server.NewServer(tuning, logger)
	go lobby.Run(ctx)

	if path := config.GetEnv("GS_TUNING", ""); path != "" {
		w, err := config.NewWatcher(path)
		if err != nil {
			logger.Warn("tuning hot reload disabled", "err", err)
		} else {
			defer w.Close()
			go func() {
				for t := range w.Tunings {
					lobby.SetTuning(t)
				}
			}()
			go func() {
				for err := range w.Errors {
					logger.Warn("tuning reload failed", "err", err)
				}
			}()
		}
	}

	err = desktop.Run(lobby, desktop.Options{
		Username: config.GetEnv("USER", "pilot"),
		Seed:     config.GetEnvInt("GS_SEED", 0),
		Logger:   logger,
	})
	if err != nil {
		logger.Error("game error", "err", err)
		cancel()
		os.Exit(1)
	}
}

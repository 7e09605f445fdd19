package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/world-engine/internal/engine"
)

func runCmd() *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the periodic settlement-update cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(interval)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Minute, "Time between update cycles")
	return cmd
}

func runRun(interval time.Duration) error {
	cfg, err := loadTuning()
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database opened", "driver", flagDriver, "dsn", flagDSN)

	updater := newUpdater(db, cfg)
	eng := engine.New(interval)
	eng.OnCycle = func(ctx context.Context) {
		if _, err := updater.RunCycle(ctx); err != nil {
			slog.Error("update cycle failed", "error", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutdown signal received", "signal", sig)
		eng.Stop()
	}()

	eng.Run(ctx)
	return nil
}

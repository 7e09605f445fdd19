// Command worldengine runs the danger-assessment and settlement-decision
// engine against the world database.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagDriver string
	flagDSN    string
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:   "worldengine",
		Short: "Danger assessment and settlement decision engine",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Tuning config yaml (built-in defaults when empty)")
	root.PersistentFlags().StringVar(&flagDriver, "db", "sqlite", "Database driver: sqlite or postgres")
	root.PersistentFlags().StringVar(&flagDSN, "dsn", "data/world.db", "Database path (sqlite) or DSN (postgres)")
	root.AddCommand(runCmd())
	root.AddCommand(cycleCmd())
	root.AddCommand(assessCmd())
	root.AddCommand(recommendCmd())
	root.AddCommand(initdbCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

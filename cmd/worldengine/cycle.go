package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func cycleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cycle",
		Short: "Run a single settlement-update cycle and exit",
		Args:  cobra.NoArgs,
		RunE:  runCycle,
	}
}

func runCycle(cmd *cobra.Command, args []string) error {
	cfg, err := loadTuning()
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := newUpdater(db, cfg).RunCycle(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("settlements: %d  built: %d  no action: %d  leaderless: %d  errors: %d\n",
		result.Settlements, result.Built, result.NoAction, result.Leaderless, result.Errors)
	fmt.Printf("danger refreshed for %d locations and %d travel links\n",
		result.LocationsAssessed, result.LinksAssessed)
	if result.Errors > 0 {
		return fmt.Errorf("cycle finished with %d errors", result.Errors)
	}
	return nil
}

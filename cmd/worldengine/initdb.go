package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initdbCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create the world database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()
			fmt.Printf("schema ready (%s: %s)\n", flagDriver, flagDSN)
			return nil
		},
	}
}

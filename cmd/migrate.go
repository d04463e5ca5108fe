package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hotel-paradiso/config"
	"hotel-paradiso/services"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the reservations schema if absent and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCfg, err := config.DBFromEnv()
			if err != nil {
				return err
			}
			db, err := config.ConnectDatabase(cmd.Context(), dbCfg)
			if err != nil {
				return err
			}
			defer config.CloseDatabase(db)
			return config.EnsureSchema(db)
		},
	}
}

func newSweepHoldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-holds",
		Short: "Expire lapsed pending holds once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCfg, err := config.DBFromEnv()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			db, err := config.ConnectDatabase(ctx, dbCfg)
			if err != nil {
				return err
			}
			defer config.CloseDatabase(db)

			n, err := services.NewAvailabilityService(db, 0).ExpireStaleHolds(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "expired %d pending hold(s)\n", n)
			return nil
		},
	}
}

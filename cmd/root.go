package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hotel-paradiso/config"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hotel-paradiso",
		Short:         "Hotel Paradiso availability and MercadoPago checkout API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadDotEnv()
		},
		// no subcommand: run the server
		RunE: runServe,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSweepHoldsCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ ERROR: %v\n", err)
		os.Exit(1)
	}
}

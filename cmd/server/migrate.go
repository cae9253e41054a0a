package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the users table if it does not exist, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, zl, err := setup(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer zl.Sync()

		store, err := openStore(cmd.Context(), cfg, zl)
		if err != nil {
			return err
		}
		store.Close()
		zl.Info("users table ready", zap.String("driver", cfg.DatabaseDriver))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

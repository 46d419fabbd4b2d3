package main

import (
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and feed indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Close() }()

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		closeDatabase(db)

		logger.Log.Info("All migrations completed successfully")
		return nil
	},
}

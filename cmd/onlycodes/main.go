package main

import (
	"fmt"
	"os"

	"github.com/pratyush0898/OnlyCodes/internal/config"
	"github.com/pratyush0898/OnlyCodes/internal/database"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "onlycodes",
	Short: "OnlyCodes feed and social graph API",
	Long: `OnlyCodes serves the developer feeds, likes, follows, profiles and
preferences over HTTP. Configuration comes from ONLYCODES_* environment
variables, an optional .env file and an optional config.yaml.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads and validates config, then starts the logger. Every
// subcommand begins here.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// openDatabase connects and migrates the schema
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(database.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogSQL:          cfg.Database.LogSQL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		closeDatabase(db)
		return nil, err
	}
	return db, nil
}

func closeDatabase(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		logger.Log.Warn("Failed to close database", zap.Error(err))
	}
}

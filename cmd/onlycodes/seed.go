package main

import (
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/seed"
	"github.com/spf13/cobra"
)

var (
	seedOpts  = seed.DefaultOptions()
	seedClean bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with fake developers, posts and engagement",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Close() }()

		if cfg.IsProduction() {
			logger.Log.Warn("Seeding a production database")
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer closeDatabase(db)

		seeder := seed.NewSeeder(db, seedOpts)
		if seedClean {
			if err := seeder.Clean(cmd.Context()); err != nil {
				return err
			}
			logger.Log.Info("Seed data cleaned")
			return nil
		}

		_, err = seeder.Run(cmd.Context())
		return err
	},
}

func init() {
	f := seedCmd.Flags()
	f.IntVar(&seedOpts.Users, "users", seedOpts.Users, "Number of profiles to create")
	f.IntVar(&seedOpts.Posts, "posts", seedOpts.Posts, "Number of posts to create")
	f.IntVar(&seedOpts.Comments, "comments", seedOpts.Comments, "Number of comments to create")
	f.IntVar(&seedOpts.Likes, "likes", seedOpts.Likes, "Number of like attempts")
	f.IntVar(&seedOpts.Follows, "follows", seedOpts.Follows, "Number of follow attempts")
	f.Int64Var(&seedOpts.Seed, "seed", 0, "Random seed; 0 picks one from the clock")
	f.BoolVar(&seedClean, "clean", false, "Delete all rows instead of seeding (use with caution)")
}

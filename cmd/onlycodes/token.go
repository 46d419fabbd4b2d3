package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pratyush0898/OnlyCodes/internal/auth"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/repository"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token [username]",
	Short: "Issue a session token for local testing",
	Long: `Issue a bearer token for an existing profile, or for a fresh user id
when no username is given (use it to call POST /api/v1/profiles).
Refused in production.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Close() }()

		if cfg.IsProduction() {
			return fmt.Errorf("token issuing is disabled in production")
		}

		userID, username := uuid.New().String(), ""
		if len(args) == 1 {
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer closeDatabase(db)

			username = args[0]
			if userID, err = repository.New(db).Profiles.ResolveID(cmd.Context(), username); err != nil {
				return err
			}
		}

		secret := cfg.JWT.Secret
		if secret == "" {
			secret = devJWTSecret
		}
		resp, err := auth.NewService([]byte(secret), cfg.JWT.TTL).IssueToken(userID, username)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "user_id: %s\ntoken:   %s\nexpires: %s\n",
			userID, resp.Token, resp.ExpiresAt.Format(time.RFC3339))
		return nil
	},
}

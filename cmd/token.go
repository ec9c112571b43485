package cmd

import (
	"fmt"
	"time"

	"bookmyconsultation/core/config"
	"bookmyconsultation/core/database"
	"bookmyconsultation/core/middleware/auth"

	"github.com/spf13/cobra"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue an access token",
	Long: `Signs an access token for the given user with the configured secret. When the
database is enabled the token is recorded so it can later be revoked.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		now := time.Now()
		token, id, err := auth.IssueAccessToken(cfg.Auth, args[0], now)
		if err != nil {
			return err
		}

		if cfg.Database.Enabled {
			db, err := database.Connect(cfg.Database, nil)
			if err != nil {
				return fmt.Errorf("database connection required to record token: %w", err)
			}
			store := database.NewTokenStore(db)
			if err := store.Migrate(); err != nil {
				return err
			}
			if err := store.Save(cmd.Context(), &database.UserAuthToken{
				TokenID:   id.TokenID,
				UserID:    id.UserID,
				IssuedAt:  now,
				ExpiresAt: id.ExpiresAt,
			}); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

// revokeCmd represents the token revoke command
var revokeCmd = &cobra.Command{
	Use:   "revoke <token-id>",
	Short: "Revoke an issued access token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database, nil)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}
		return database.NewTokenStore(db).Revoke(cmd.Context(), args[0], time.Now())
	},
}

func init() {
	RootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(revokeCmd)
}

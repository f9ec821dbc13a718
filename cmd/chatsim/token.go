package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jusbook/config"
	"jusbook/utils"
)

func tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
		secret  string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token for the /api/admin endpoints",
		Long: `Mint an HS256 admin token signed with ADMIN_JWT_SECRET (or --secret).

Use it as: Authorization: Bearer <token>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = config.AppConfig.AdminJWTSecret
			}
			token, err := utils.GenerateAdminToken(secret, subject, ttl)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "staff", "staff member the token is issued to")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret, defaults to ADMIN_JWT_SECRET")
	return cmd
}

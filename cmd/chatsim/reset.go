package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jusbook/config"
	ai "jusbook/services/intelligence"
	"jusbook/utils"
)

var errNotRedis = errors.New("reset needs SESSION_BACKEND=redis; in-memory sessions end with the process")

func resetCmd(sessionID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drop a stored Redis session so the next message starts over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.AppConfig.SessionBackend != "redis" {
				return errNotRedis
			}
			if err := utils.InitSessionCache(); err != nil {
				return err
			}
			client := utils.GetSessionCacheClient()
			defer client.Close()

			store := ai.NewRedisSessionStore(client, config.AppConfig.SessionTTL())
			if err := store.Clear(cmd.Context(), *sessionID); err != nil {
				return fmt.Errorf("clear session %s: %w", *sessionID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session %s cleared\n", *sessionID)
			return nil
		},
	}
}

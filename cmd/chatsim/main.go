// Command chatsim drives the dialogue engine from the terminal without the HTTP layer.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jusbook/config"
	"jusbook/utils"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		script    bool
		sessionID string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "chatsim",
		Short: "Chat with the booking assistant from the terminal",
		Long: `Chat with the booking assistant from the terminal.

Sessions use the configured SESSION_BACKEND, so a Redis-backed conversation
can be resumed later with the same --session.

  chatsim                 interactive chat
  chatsim --script        replay a canned booking conversation
  chatsim token           mint an admin API token
  chatsim reset           drop a stored Redis session`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if verbose {
				logger = utils.GetLogger()
			}
			sim, err := newSimulator(logger, sessionID)
			if err != nil {
				return err
			}
			defer sim.close()

			if script {
				return sim.replay(cmd.Context(), cmd.OutOrStdout())
			}
			return sim.interactive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&script, "script", false, "replay a canned booking conversation")
	cmd.PersistentFlags().StringVar(&sessionID, "session", "console", "session id")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log dialogue turns")

	cmd.AddCommand(
		tokenCmd(),
		resetCmd(&sessionID),
	)
	return cmd
}

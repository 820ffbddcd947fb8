package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "tondrop",
		Short: "CLI tool for the TonDrop game API",
		Long: `tondrop is a CLI tool for interacting with the TonDrop game JSON API.

It supports score submission, wallet and booster management, referrals,
leaderboard queries and the operator endpoints.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.AdminSecret)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: TONDROP_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminSecret, "admin-secret", cfg.AdminSecret, "Admin secret for operator endpoints (env: TONDROP_ADMIN_SECRET)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newWalletCmd())
	rootCmd.AddCommand(newBoosterCmd())
	rootCmd.AddCommand(newReferCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newCompetitionCmd())
	rootCmd.AddCommand(newAdminCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

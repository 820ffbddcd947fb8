package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var playerID, username string
	var score int64

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Submit a tap score",
		RunE: func(cmd *cobra.Command, args []string) error {
			if score <= 0 {
				return fmt.Errorf("--score must be positive")
			}

			req := map[string]any{
				"player_id": playerID,
				"username":  username,
				"score":     score,
			}
			var result Player

			if err := client.Post("/api/v1/scores", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player ID (required)")
	cmd.Flags().StringVar(&username, "name", "", "Display name")
	cmd.Flags().Int64Var(&score, "score", 0, "Score to submit (required)")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player commands",
	}

	cmd.AddCommand(newPlayerGetCmd())

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player-id>",
		Short: "Show a player's ledger record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get("/api/v1/players/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newWalletCmd() *cobra.Command {
	var playerID, wallet string

	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Attach a payout wallet address",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"player_id": playerID,
				"wallet":    wallet,
			}
			var result Player

			if err := client.Post("/api/v1/wallet", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player ID (required)")
	cmd.Flags().StringVar(&wallet, "address", "", "Wallet address (required)")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}

func newBoosterCmd() *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   "booster",
		Short: "Activate a score booster",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"player_id": playerID}
			var result Player

			if err := client.Post("/api/v1/boosters", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player ID (required)")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

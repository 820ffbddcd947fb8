package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var field string
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top players",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/leaderboard?field=%s&limit=%d", field, limit)
			var result Leaderboard

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", "total", "Ranking field: total, competition")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of entries")

	return cmd
}

func newCompetitionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "competition",
		Short: "Show the current competition window",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CompetitionStatus

			if err := client.Get("/api/v1/competition", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

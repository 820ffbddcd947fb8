package cli

import (
	"github.com/spf13/cobra"
)

func newReferCmd() *cobra.Command {
	var playerID, username, referrer string

	cmd := &cobra.Command{
		Use:   "refer",
		Short: "Register a referral",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"player_id": playerID,
				"username":  username,
				"referrer":  referrer,
			}
			var result ReferralResult

			if err := client.Post("/api/v1/referrals", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Referred player ID (required)")
	cmd.Flags().StringVar(&username, "name", "", "Referred player display name")
	cmd.Flags().StringVar(&referrer, "referrer", "", "Referrer username (required)")
	_ = cmd.MarkFlagRequired("player")
	_ = cmd.MarkFlagRequired("referrer")

	return cmd
}

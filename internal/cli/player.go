package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player registration commands",
	}

	cmd.AddCommand(newPlayerRegisterCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerApproveCmd())
	cmd.AddCommand(newPlayerHoldCmd())
	cmd.AddCommand(newPlayerRejectCmd())
	cmd.AddCommand(newPlayerRevertCmd())

	return cmd
}

func newPlayerRegisterCmd() *cobra.Command {
	var name, dob, grade, gender, guardian string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Submit a new player registration",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"display_name":  name,
				"date_of_birth": dob,
				"grade":         grade,
				"gender":        gender,
				"guardian_id":   guardian,
			}
			var result Player

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player display name (required)")
	cmd.Flags().StringVar(&dob, "dob", "", "Date of birth YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&grade, "grade", "", "School grade")
	cmd.Flags().StringVar(&gender, "gender", "", "Gender")
	cmd.Flags().StringVar(&guardian, "guardian", "", "Guardian ID (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("dob")
	_ = cmd.MarkFlagRequired("guardian")

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player-id>",
		Short: "Show a player registration",
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

func newPlayerApproveCmd() *cobra.Command {
	var team string

	cmd := &cobra.Command{
		Use:   "approve <player-id>",
		Short: "Approve a pending registration and assign a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if team == "" {
				return fmt.Errorf("--team is required")
			}

			req := map[string]string{"team_id": team}
			var result Player

			if err := client.Post("/api/v1/players/"+args[0]+"/approve", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Team ID to assign (required)")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func newPlayerHoldCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "hold <player-id>",
		Short: "Place a pending registration on hold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reason == "" {
				return fmt.Errorf("--reason is required")
			}

			req := map[string]string{"reason": reason}
			var result Player

			if err := client.Post("/api/v1/players/"+args[0]+"/hold", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Hold reason (required)")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

func newPlayerRejectCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "reject <player-id>",
		Short: "Reject a pending registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reason == "" {
				return fmt.Errorf("--reason is required")
			}

			req := map[string]string{"reason": reason}
			var result Player

			if err := client.Post("/api/v1/players/"+args[0]+"/reject", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Rejection reason (required)")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

func newPlayerRevertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revert <player-id>",
		Short: "Return an on-hold registration to the review queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Post("/api/v1/players/"+args[0]+"/revert", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

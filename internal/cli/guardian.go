package cli

import (
	"github.com/spf13/cobra"
)

func newGuardianCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guardian",
		Short: "Guardian and billing commands",
	}

	cmd.AddCommand(newGuardianCreateCmd())
	cmd.AddCommand(newGuardianGetCmd())
	cmd.AddCommand(newGuardianPlayersCmd())
	cmd.AddCommand(newGuardianBalanceCmd())
	cmd.AddCommand(newGuardianInvoiceCmd())

	return cmd
}

func newGuardianCreateCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a guardian account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"email": email}
			var result Guardian

			if err := client.Post("/api/v1/guardians", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Guardian email (required)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newGuardianGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <guardian-id>",
		Short: "Show a guardian",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Guardian

			if err := client.Get("/api/v1/guardians/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGuardianPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players <guardian-id>",
		Short: "List a guardian's players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get("/api/v1/guardians/"+args[0]+"/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGuardianBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <guardian-id>",
		Short: "Show a guardian's account balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Balance

			if err := client.Get("/api/v1/guardians/"+args[0]+"/balance", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGuardianInvoiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invoice <guardian-id>",
		Short: "Show a guardian's derived invoice lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []InvoiceLine

			if err := client.Get("/api/v1/guardians/"+args[0]+"/invoice", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

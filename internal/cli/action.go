package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autonex/aiops/pkg/client"
)

func newActionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Decide on proposed remediation actions",
	}

	cmd.AddCommand(newActionListCmd())
	cmd.AddCommand(newActionApproveCmd())
	cmd.AddCommand(newActionRejectCmd())

	return cmd
}

func newActionListCmd() *cobra.Command {
	var incidentID, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List remediation actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, err := apiClient.Actions().List(context.Background(), &client.ActionListOptions{
				IncidentID: incidentID,
				Status:     status,
			})
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(actions)
			}

			table := NewTable("ID", "INCIDENT", "ACTION", "RISK", "STATUS", "APPROVED BY")
			for _, a := range actions {
				table.AddRow(
					truncate(a.ID, 8),
					truncate(a.IncidentID, 8),
					truncate(a.Action, 30),
					a.RiskLevel,
					formatStatus(a.Status),
					a.ApprovedBy,
				)
			}
			table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&incidentID, "incident", "", "filter by incident ID")
	cmd.Flags().StringVar(&status, "status", "", "filter by status: pending, approved, rejected")

	return cmd
}

func newActionApproveCmd() *cobra.Command {
	var approvedBy string

	cmd := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := apiClient.Actions().Approve(context.Background(), args[0], approvedBy)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(a)
			}

			fmt.Printf("Action %s approved by %s\n", truncate(a.ID, 8), a.ApprovedBy)
			return nil
		},
	}

	cmd.Flags().StringVar(&approvedBy, "by", "", "name of the approver")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

func newActionRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := apiClient.Actions().Reject(context.Background(), args[0])
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(a)
			}

			fmt.Printf("Action %s rejected\n", truncate(a.ID, 8))
			return nil
		},
	}
}

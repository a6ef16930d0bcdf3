package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autonex/aiops/pkg/client"
)

func newIncidentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "incident",
		Short: "Manage incidents",
	}

	cmd.AddCommand(newIncidentListCmd())
	cmd.AddCommand(newIncidentGetCmd())
	cmd.AddCommand(newIncidentCreateCmd())
	cmd.AddCommand(newIncidentStatusCmd())
	cmd.AddCommand(newIncidentAnalyzeCmd())
	cmd.AddCommand(newIncidentRecommendCmd())

	return cmd
}

func newIncidentListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List incidents",
		RunE: func(cmd *cobra.Command, args []string) error {
			incidents, err := apiClient.Incidents().List(context.Background(), status)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(incidents)
			}

			table := NewTable("ID", "TITLE", "SERVICE", "SEVERITY", "STATUS", "CREATED")
			for _, inc := range incidents {
				table.AddRow(
					truncate(inc.ID, 8),
					truncate(inc.Title, 40),
					inc.Service,
					formatSeverity(inc.Severity),
					formatStatus(inc.Status),
					inc.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status: open, investigating, resolved")

	return cmd
}

func newIncidentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show incident details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inc, err := apiClient.Incidents().Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(inc)
			}

			fmt.Printf("Incident %s\n", inc.ID)
			fmt.Println(strings.Repeat("=", 40))
			fmt.Printf("  Title:     %s\n", inc.Title)
			fmt.Printf("  Service:   %s\n", inc.Service)
			fmt.Printf("  Severity:  %s\n", formatSeverity(inc.Severity))
			fmt.Printf("  Status:    %s\n", formatStatus(inc.Status))
			fmt.Printf("  Created:   %s\n", inc.CreatedAt.Format("2006-01-02 15:04:05"))
			if inc.ResolvedAt != nil {
				fmt.Printf("  Resolved:  %s\n", inc.ResolvedAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Printf("  Anomalies: %d\n", len(inc.AnomalyIDs))

			if inc.AIExplanation != "" {
				fmt.Println("\nAnalysis:")
				fmt.Println(inc.AIExplanation)
			}

			if len(inc.Recommendations) > 0 {
				fmt.Println("\nRecommendations:")
				for i, p := range inc.Recommendations {
					fmt.Printf("  %d. %s (risk: %s)\n", i+1, p.Action, p.RiskLevel)
					fmt.Printf("     %s\n", p.Description)
				}
			}

			return nil
		},
	}
}

func newIncidentCreateCmd() *cobra.Command {
	var title, severity, service string
	var anomalyIDs []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new incident",
		RunE: func(cmd *cobra.Command, args []string) error {
			inc, err := apiClient.Incidents().Create(context.Background(), client.CreateIncidentRequest{
				Title:      title,
				Severity:   severity,
				Service:    service,
				AnomalyIDs: anomalyIDs,
			})
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(inc)
			}

			fmt.Printf("Incident %s created\n", inc.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "incident title")
	cmd.Flags().StringVar(&severity, "severity", "medium", "severity: critical, high, medium, low")
	cmd.Flags().StringVar(&service, "service", "", "affected service")
	cmd.Flags().StringSliceVar(&anomalyIDs, "anomaly", nil, "anomaly IDs to attach (repeatable)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("service")

	return cmd
}

func newIncidentStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an incident to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inc, err := apiClient.Incidents().UpdateStatus(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(inc)
			}

			fmt.Printf("Incident %s is now %s\n", truncate(inc.ID, 8), inc.Status)
			return nil
		},
	}
}

func newIncidentAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <id>",
		Short: "Generate a root-cause analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Incidents().Analyze(context.Background(), args[0])
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			fmt.Println(result.Analysis)
			return nil
		},
	}
}

func newIncidentRecommendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <id>",
		Short: "Generate remediation proposals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Incidents().Recommend(context.Background(), args[0])
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			for i, p := range result.Recommendations {
				fmt.Printf("%d. %s (risk: %s)\n", i+1, p.Action, p.RiskLevel)
				fmt.Printf("   %s\n", p.Description)
				if p.Impact != "" {
					fmt.Printf("   Impact: %s\n", p.Impact)
				}
			}
			return nil
		},
	}
}

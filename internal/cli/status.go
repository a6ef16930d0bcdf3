package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			dashboard, err := apiClient.Stats().Dashboard(ctx)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(dashboard)
			}

			fmt.Println("AIOps Dashboard")
			fmt.Println(strings.Repeat("=", 40))
			fmt.Printf("  Model trained:    %v\n", dashboard.ModelTrained)
			fmt.Printf("  Anomalies (24h):  %d\n", dashboard.Anomalies24h)
			fmt.Printf("  Incidents:        %d open (%d total)\n", dashboard.OpenIncidents, dashboard.TotalIncidents)
			fmt.Printf("  Pending actions:  %d\n", dashboard.PendingActions)
			fmt.Println()

			table := NewTable("SERVICE", "STATUS", "CPU", "MEMORY", "LATENCY", "ERROR RATE")
			for _, svc := range dashboard.Services {
				if svc.Metrics == nil {
					table.AddRow(svc.Name, formatStatus(svc.Status), "-", "-", "-", "-")
					continue
				}
				table.AddRow(
					svc.Name,
					formatStatus(svc.Status),
					fmt.Sprintf("%.1f%%", svc.Metrics.CPU),
					fmt.Sprintf("%.1f%%", svc.Metrics.Memory),
					fmt.Sprintf("%.0fms", svc.Metrics.Latency),
					fmt.Sprintf("%.1f%%", svc.Metrics.ErrorRate),
				)
			}
			table.Render()

			return nil
		},
	}
}

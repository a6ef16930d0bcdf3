package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autonex/aiops/pkg/client"
)

func newAnomalyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anomaly",
		Short: "Review detected anomalies",
	}

	cmd.AddCommand(newAnomalyListCmd())
	cmd.AddCommand(newAnomalyDetectCmd())

	return cmd
}

func newAnomalyListCmd() *cobra.Command {
	var minutes, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent anomalies",
		RunE: func(cmd *cobra.Command, args []string) error {
			anomalies, err := apiClient.Anomalies().List(context.Background(), &client.AnomalyListOptions{
				Minutes: minutes,
				Limit:   limit,
			})
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(anomalies)
			}

			renderAnomalyTable(anomalies)
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 60, "window size in minutes")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")

	return cmd
}

func newAnomalyDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Run a detection pass now",
		RunE: func(cmd *cobra.Command, args []string) error {
			anomalies, err := apiClient.Anomalies().Detect(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(anomalies)
			}

			if len(anomalies) == 0 {
				fmt.Println("No anomalies detected")
				return nil
			}

			renderAnomalyTable(anomalies)
			return nil
		},
	}
}

func renderAnomalyTable(anomalies []client.Anomaly) {
	table := NewTable("ID", "SERVICE", "METRIC", "SEVERITY", "CONFIDENCE", "VALUE", "BASELINE", "TIME")
	for _, a := range anomalies {
		table.AddRow(
			truncate(a.ID, 8),
			a.Service,
			a.MetricType,
			formatSeverity(a.Severity),
			fmt.Sprintf("%.2f", a.Confidence),
			fmt.Sprintf("%.1f", a.Value),
			fmt.Sprintf("%.1f", a.Baseline),
			a.Timestamp.Format("15:04:05"),
		)
	}
	table.Render()
}

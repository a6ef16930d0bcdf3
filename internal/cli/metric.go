package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newMetricCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metric",
		Short: "Inspect service telemetry",
	}

	cmd.AddCommand(newMetricLatestCmd())
	cmd.AddCommand(newMetricTimeseriesCmd())

	return cmd
}

func newMetricLatestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Show the latest sample for every service",
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics, err := apiClient.Metrics().Latest(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(metrics)
			}

			table := NewTable("SERVICE", "CPU", "MEMORY", "LATENCY", "ERROR RATE", "REQ/S", "TIMESTAMP")
			for _, m := range metrics {
				table.AddRow(
					m.Service,
					fmt.Sprintf("%.1f%%", m.CPU),
					fmt.Sprintf("%.1f%%", m.Memory),
					fmt.Sprintf("%.0fms", m.Latency),
					fmt.Sprintf("%.1f%%", m.ErrorRate),
					fmt.Sprintf("%.0f", m.RequestsPerSec),
					m.Timestamp.Format("15:04:05"),
				)
			}
			table.Render()

			return nil
		},
	}
}

func newMetricTimeseriesCmd() *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "timeseries <service>",
		Short: "Show recent samples for one service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics, err := apiClient.Metrics().Timeseries(context.Background(), args[0], minutes)
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(metrics)
			}

			table := NewTable("TIMESTAMP", "CPU", "MEMORY", "LATENCY", "ERROR RATE", "REQ/S")
			for _, m := range metrics {
				table.AddRow(
					m.Timestamp.Format("15:04:05"),
					fmt.Sprintf("%.1f%%", m.CPU),
					fmt.Sprintf("%.1f%%", m.Memory),
					fmt.Sprintf("%.0fms", m.Latency),
					fmt.Sprintf("%.1f%%", m.ErrorRate),
					fmt.Sprintf("%.0f", m.RequestsPerSec),
				)
			}
			table.Render()

			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 30, "window size in minutes")

	return cmd
}

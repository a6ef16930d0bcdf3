package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Control the failure scenario of the telemetry simulator",
	}

	cmd.AddCommand(newDemoInjectCmd())
	cmd.AddCommand(newDemoClearCmd())
	cmd.AddCommand(newDemoStatusCmd())

	return cmd
}

func newDemoInjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inject <service>",
		Short: "Start a failure scenario for one service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Demo().InjectFailure(context.Background(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Failure injected into %s\n", args[0])
			return nil
		},
	}
}

func newDemoClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "End any active failure scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Demo().ClearFailure(context.Background()); err != nil {
				return err
			}

			fmt.Println("Failure cleared")
			return nil
		},
	}
}

func newDemoStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the failure scenario state",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := apiClient.Demo().Status(context.Background())
			if err != nil {
				return err
			}

			if getOutputFormat() != "table" {
				return printOutput(status)
			}

			if status.FailureActive {
				fmt.Printf("Failure active on %s\n", status.Service)
			} else {
				fmt.Println("No active failure")
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/beetlebot/cheepnow/cmd/cheepnow/commands"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "cheepnow",
		Short: "CheepNow – Philippine domestic flight deals with value scoring and price locks",
		Long:  "Simulated flight search for Philippine domestic routes. Ranks mock offers by a composite value score and holds prices for 15 minutes per session.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return commands.InitLogging(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			commands.CloseLogging()
		},
	}

	root.PersistentFlags().Int64("seed", 0, "Random seed for reproducible results (0 = from config/env, else time-based)")
	root.PersistentFlags().String("env", "", "Environment: development or production (default from config/env)")
	root.PersistentFlags().Bool("json", true, "Output as JSON (default true)")

	root.AddCommand(commands.FlightsCmd())
	root.AddCommand(commands.ReferenceCmd())
	root.AddCommand(commands.DoctorCmd())
	root.AddCommand(commands.ServeCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print cheepnow version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("cheepnow v0.2.0")
		},
	}
}

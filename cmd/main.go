package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smc-calendar",
	Short: "SMC-CalendarService - availability calendars of company addresses",
	Long: "SMC-CalendarService keeps each address calendar as an ascending sequence of " +
		"non-overlapping availability slots and merges or splits them on every change.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, planCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

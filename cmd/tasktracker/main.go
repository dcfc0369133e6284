package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "tasktracker",
		Short:   "Personal task list with due-soon reminders",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation opens the interactive surface.
			return runTUI()
		},
	}

	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

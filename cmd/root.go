package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "algooee",
	Short: "Next-day high prediction for NSE stocks",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

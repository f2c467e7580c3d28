// Package main provides the entry point for the success predictor CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "predictor",
	Short: "Application success prediction engine",
	Long:  "Predictor estimates interview and offer probability, expected salary, time to hire and candidate competitiveness for a CV/job pair, with ranked improvement recommendations.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

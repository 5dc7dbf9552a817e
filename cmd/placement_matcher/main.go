// Package main provides the placement_matcher CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "placement_matcher",
	Short: "Resume and job-description analysis for campus placement",
	Long: "placement_matcher extracts skills and sections from student resumes, scores their structure, " +
		"derives requirements from job descriptions, and matches the two. Results are JSON by default.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

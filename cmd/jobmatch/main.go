// Package main provides the entry point for the JobMatch HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobmatch",
	Short: "JobMatch HTTP API Server",
	Long:  "JobMatch scrapes job boards, scores postings against a candidate profile, and tracks applications through their lifecycle via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

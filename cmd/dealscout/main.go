// Package main provides the dealscout CLI: an agent that searches product
// platforms, scores and shortlists candidates, and writes a purchase report.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dealscout",
	Short: "Shopping research agent",
	Long:  "Dealscout searches product platforms for a keyword, scores and deduplicates the listings, shortlists the best candidates, and synthesizes a purchase recommendation report.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

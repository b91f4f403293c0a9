package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weiliu/dealscout/internal/observability"
	"github.com/weiliu/dealscout/internal/profile"
)

var profileCommand = &cobra.Command{
	Use:   "profile",
	Short: "Show the personalization profile",
	RunE:  runProfileCmd,
}

var profileShowPath string

func init() {
	profileCommand.Flags().StringVar(&profileShowPath, "profile", profile.DefaultPath, "Path to the personalization profile document")

	rootCmd.AddCommand(profileCommand)
}

func runProfileCmd(_ *cobra.Command, _ []string) error {
	p, err := profile.Load(profileShowPath)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintProfile(p)
	return nil
}

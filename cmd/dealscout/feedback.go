package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weiliu/dealscout/internal/feedback"
	"github.com/weiliu/dealscout/internal/llm"
	"github.com/weiliu/dealscout/internal/profile"
)

var feedbackCommand = &cobra.Command{
	Use:   "feedback [text]",
	Short: "Fold purchase feedback into the personalization profile",
	Long: `Sends free-text feedback about past recommendations to the semantic service
and appends any derived preferences to the personalization profile. Applying
the same feedback twice leaves the profile unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runFeedbackCmd,
}

var (
	feedbackProfilePath string
	feedbackAPIKey      string
)

func init() {
	feedbackCommand.Flags().StringVar(&feedbackProfilePath, "profile", profile.DefaultPath, "Path to the personalization profile document")
	feedbackCommand.Flags().StringVar(&feedbackAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(feedbackCommand)
}

func runFeedbackCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	apiKey := feedbackAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	result, err := feedback.Optimize(ctx, client, feedbackProfilePath, args[0])
	if err != nil {
		return err
	}

	if result.Added {
		fmt.Println("Profile updated.")
	} else {
		fmt.Println("No profile changes derived from this feedback.")
	}
	return nil
}

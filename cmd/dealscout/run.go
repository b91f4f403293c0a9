package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/weiliu/dealscout/internal/collect"
	"github.com/weiliu/dealscout/internal/config"
	"github.com/weiliu/dealscout/internal/llm"
	"github.com/weiliu/dealscout/internal/pipeline"
	"github.com/weiliu/dealscout/internal/selection"
	"github.com/weiliu/dealscout/internal/session"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full shopping research pipeline end-to-end",
	Long: `Orchestrates the entire research process: collection -> scoring -> selection -> enrichment -> reporting.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath  string
	runKeyword     string
	runMaxPages    int
	runTopN        int
	runWorkspace   string
	runProfilePath string
	runAPIKey      string
	runDatabaseURL string
	runInteractive bool
	runCleanup     bool
	runVerbose     bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runKeyword, "keyword", "k", "", "Product keyword to research")
	runCommand.Flags().IntVar(&runMaxPages, "max-pages", 0, "Search pages per platform")
	runCommand.Flags().IntVar(&runTopN, "top-n", 0, "Shortlist size")
	runCommand.Flags().StringVar(&runWorkspace, "workspace", "", "Session workspace directory")
	runCommand.Flags().StringVar(&runProfilePath, "profile", "", "Path to the personalization profile document")
	runCommand.Flags().BoolVarP(&runInteractive, "interactive", "i", false, "Ask clarifying questions before searching")
	runCommand.Flags().BoolVar(&runCleanup, "cleanup", false, "Remove transient detail records after the run")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for optional artifact mirroring
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("max-pages") {
		cfg.MaxPages = runMaxPages
	}
	if cmd.Flags().Changed("top-n") {
		cfg.TopN = runTopN
	}
	if cmd.Flags().Changed("workspace") {
		cfg.Workspace = runWorkspace
	}
	if cmd.Flags().Changed("profile") {
		cfg.ProfilePath = runProfilePath
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Default())
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 4: Validate required fields
	if runKeyword == "" {
		return fmt.Errorf("--keyword is required")
	}

	// Step 5: API key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	// Optionally sharpen the keyword into a requirements statement.
	requirements := runKeyword
	if runInteractive {
		requirements = gatherRequirements(ctx, client, runKeyword)
	}

	detailInterval := time.Duration(cfg.DetailIntervalSeconds) * time.Second
	collectors := []collect.Collector{
		collect.NewJDCollector(),
		collect.NewTaobaoCollector(detailInterval),
	}

	store := session.NewStore(cfg.Workspace)
	orchestrator := pipeline.NewOrchestrator(collectors, client, store, cfg)

	opts := pipeline.RunOptions{
		Keyword:      runKeyword,
		Requirements: requirements,
		Cleanup:      runCleanup,
		OnProgress: func(event pipeline.ProgressEvent) {
			fmt.Printf("[%s] %s\n", event.Stage, event.Message)
		},
	}

	if err := orchestrator.Run(ctx, opts); err != nil {
		return err
	}

	fmt.Printf("\nReport written to %s\n", store.ReportPath())
	return nil
}

// gatherRequirements asks the user the clarifying questions the semantic
// service proposes and folds the answers into the requirements text. Any
// failure degrades to the bare keyword.
func gatherRequirements(ctx context.Context, client llm.Client, keyword string) string {
	questions := selection.ClarifyingQuestions(ctx, client, keyword)
	if len(questions) == 0 {
		return keyword
	}

	reader := bufio.NewReader(os.Stdin)
	var sb strings.Builder
	sb.WriteString("Product: " + keyword + "\n")
	for _, q := range questions {
		fmt.Printf("%s\n> ", q)
		answer, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		answer = strings.TrimSpace(answer)
		if answer != "" {
			sb.WriteString(fmt.Sprintf("%s %s\n", q, answer))
		}
	}
	return sb.String()
}

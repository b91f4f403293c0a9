// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/weiliu/dealscout/internal/scoring"
)

// Defaults for the per-invocation knobs.
const (
	DefaultMaxPages     = 3
	DefaultTopN         = 5
	DefaultCandidateCap = 100
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or can be
// overridden via CLI flags.
type Config struct {
	// Collection
	MaxPages int `json:"max_pages,omitempty" validate:"gte=0,lte=50"` // Search pages per platform
	TopN     int `json:"top_n,omitempty" validate:"gte=0,lte=20"`     // Shortlist size
	// CandidateCap bounds how many ranked candidates are offered to the
	// selection oracle.
	CandidateCap int `json:"candidate_cap,omitempty" validate:"gte=0,lte=500"`

	// Scoring heuristics (externalized; see scoring.Config)
	ShopTiers            []scoring.TierRule `json:"shop_tiers,omitempty" validate:"dive"`
	TitleLengthThreshold int                `json:"title_length_threshold,omitempty" validate:"gte=0"`

	// Enrichment
	DetailIntervalSeconds int      `json:"detail_interval_seconds,omitempty" validate:"gte=0"` // Pacing between detail requests
	SkipDetailPlatforms   []string `json:"skip_detail_platforms,omitempty"`                    // Platforms rich enough at search time

	// Paths
	Workspace   string `json:"workspace,omitempty"`    // Session workspace directory
	ProfilePath string `json:"profile_path,omitempty"` // Personalization profile document

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // Optional PostgreSQL URL for artifact mirroring
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

// Default returns the configuration used when no file or flags override it.
func Default() Config {
	scoringDefaults := scoring.DefaultConfig()
	return Config{
		MaxPages:              DefaultMaxPages,
		TopN:                  DefaultTopN,
		CandidateCap:          DefaultCandidateCap,
		ShopTiers:             scoringDefaults.ShopTiers,
		TitleLengthThreshold:  scoringDefaults.TitleLengthThreshold,
		DetailIntervalSeconds: 3,
		SkipDetailPlatforms:   []string{"JD"},
		Workspace:             "data",
		ProfilePath:           "profile.json",
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks structural constraints on the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. CLI flags are applied on top by the command layer.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}
	if result.CandidateCap == 0 {
		result.CandidateCap = defaults.CandidateCap
	}
	if len(result.ShopTiers) == 0 {
		result.ShopTiers = defaults.ShopTiers
	}
	if result.TitleLengthThreshold == 0 {
		result.TitleLengthThreshold = defaults.TitleLengthThreshold
	}
	if result.DetailIntervalSeconds == 0 {
		result.DetailIntervalSeconds = defaults.DetailIntervalSeconds
	}
	if result.SkipDetailPlatforms == nil {
		result.SkipDetailPlatforms = defaults.SkipDetailPlatforms
	}
	if result.Workspace == "" {
		result.Workspace = defaults.Workspace
	}
	if result.ProfilePath == "" {
		result.ProfilePath = defaults.ProfilePath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ScoringConfig projects the scoring-related fields into scoring.Config.
func (c *Config) ScoringConfig() scoring.Config {
	return scoring.Config{
		ShopTiers:            c.ShopTiers,
		TitleLengthThreshold: c.TitleLengthThreshold,
	}
}

package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/weiliu/dealscout/internal/collect"
	"github.com/weiliu/dealscout/internal/config"
	"github.com/weiliu/dealscout/internal/db"
	"github.com/weiliu/dealscout/internal/llm"
	"github.com/weiliu/dealscout/internal/observability"
	"github.com/weiliu/dealscout/internal/profile"
	"github.com/weiliu/dealscout/internal/report"
	"github.com/weiliu/dealscout/internal/scoring"
	"github.com/weiliu/dealscout/internal/selection"
	"github.com/weiliu/dealscout/internal/session"
	"github.com/weiliu/dealscout/internal/types"
)

// RunOptions holds the per-invocation inputs of a session.
type RunOptions struct {
	// Keyword is the product the user wants to buy.
	Keyword string
	// Requirements is the detailed requirements text (keyword plus any
	// clarifying answers). Defaults to the keyword when empty.
	Requirements string
	// Cleanup removes transient artifacts (detail records) after the run.
	Cleanup bool
	// OnProgress, when set, receives stage-by-stage progress events.
	OnProgress ProgressCallback
}

// Orchestrator sequences the pipeline stages over a fixed set of platform
// collectors. One orchestrator runs one session at a time; sessions are
// single-tenant.
type Orchestrator struct {
	collectors []collect.Collector
	client     llm.Client
	store      *session.Store
	cfg        config.Config
	printer    *observability.Printer

	state State
}

// NewOrchestrator wires an orchestrator. The collector list order fixes the
// deterministic merge order of their results.
func NewOrchestrator(collectors []collect.Collector, client llm.Client, store *session.Store, cfg config.Config) *Orchestrator {
	return &Orchestrator{
		collectors: collectors,
		client:     client,
		store:      store,
		cfg:        cfg,
		printer:    observability.NewPrinter(os.Stdout),
		state:      StateIdle,
	}
}

// State returns the current pipeline state.
func (o *Orchestrator) State() State {
	return o.state
}

// Run executes one full session. On failure the returned error is a
// *StageError naming the stage whose precondition was unmet; artifacts
// persisted before that stage stay inspectable.
func (o *Orchestrator) Run(ctx context.Context, opts RunOptions) error {
	if opts.Keyword == "" {
		return &StageError{Stage: StateIdle, Reason: "no keyword provided"}
	}
	if opts.Requirements == "" {
		opts.Requirements = opts.Keyword
	}

	// Optional artifact mirroring; the pipeline is fine without it.
	var database *db.DB
	var sessionID uuid.UUID
	if o.cfg.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, o.cfg.DatabaseURL)
		if err != nil {
			log.Printf("[pipeline] database unavailable, continuing without persistence: %v", err)
		} else {
			defer database.Close()
			if sessionID, err = database.CreateSession(ctx, opts.Keyword); err != nil {
				log.Printf("[pipeline] failed to create session record: %v", err)
				sessionID = uuid.Nil
			}
		}
	}

	// The profile is loaded once per session; a broken document degrades to
	// an empty profile rather than blocking the run.
	userProfile, err := profile.Load(o.cfg.ProfilePath)
	if err != nil {
		log.Printf("[pipeline] failed to load profile, using empty profile: %v", err)
		userProfile = profile.New()
	}
	contextBlock := profile.Render(userProfile)

	if opts.Cleanup {
		defer o.store.Cleanup()
	}

	err = o.run(ctx, opts, contextBlock, database, sessionID)

	if database != nil && sessionID != uuid.Nil {
		status := "done"
		if err != nil {
			status = "failed"
		}
		_ = database.CompleteSession(ctx, sessionID, status)
	}
	return err
}

func (o *Orchestrator) run(ctx context.Context, opts RunOptions, contextBlock string, database *db.DB, sessionID uuid.UUID) error {
	// Collecting: reset the workspace, then let every collector contribute.
	o.transition(opts, StateCollecting, fmt.Sprintf("searching %d platforms for %q", len(o.collectors), opts.Keyword))
	if err := o.store.Reset(); err != nil {
		return o.fail(StateCollecting, "workspace reset failed", err)
	}

	acc := collect.NewAccumulator()
	results := collect.SearchAll(ctx, o.collectors, acc, opts.Keyword, o.cfg.MaxPages)
	for _, r := range results {
		if r.Err == nil {
			o.emit(opts, StateCollecting, fmt.Sprintf("%s contributed %d listings", r.Platform, len(r.Products)), nil)
		}
	}
	merged := acc.Products()
	if len(merged) == 0 {
		return o.fail(StateCollecting, "no listings collected", nil)
	}

	// Scoring is pure and cannot fail; persist the ranked snapshot before
	// moving on so it survives any later-stage failure.
	o.transition(opts, StateScoring, fmt.Sprintf("scoring %d unique products", len(merged)))
	ranked := scoring.Rank(merged, o.cfg.ScoringConfig())
	if err := o.store.SaveRanked(ranked); err != nil {
		return o.fail(StateScoring, "persisting ranked snapshot failed", err)
	}
	o.mirror(ctx, database, sessionID, db.StageRanked, ranked)
	if o.cfg.Verbose {
		o.printer.PrintRanked(ranked, scoring.ComputeStats(merged))
	}

	// Selecting: the oracle/fallback contract guarantees a shortlist
	// whenever the ranked collection is non-empty.
	o.transition(opts, StateSelecting, fmt.Sprintf("selecting top %d candidates", o.cfg.TopN))
	result, err := selection.Select(ctx, o.client, ranked, selection.Options{
		TopN:         o.cfg.TopN,
		CandidateCap: o.cfg.CandidateCap,
		Requirements: opts.Requirements,
		ContextBlock: contextBlock,
	})
	if err != nil {
		return o.fail(StateSelecting, "no shortlist could be formed", err)
	}
	if err := o.store.SaveShortlist(result); err != nil {
		return o.fail(StateSelecting, "persisting shortlist failed", err)
	}
	o.mirror(ctx, database, sessionID, db.StageShortlist, result)
	o.emit(opts, StateSelecting, selection.ResultSummary(result), result)
	if o.cfg.Verbose {
		o.printer.PrintShortlist(result)
	}

	// Enriching: per-item and per-platform failures degrade, never abort.
	o.transition(opts, StateEnriching, fmt.Sprintf("collecting details for %d products", len(result.Products)))
	o.enrich(ctx, result.Products)

	// Reporting: a failed synthesis is terminal; no partial report.
	o.transition(opts, StateReporting, "synthesizing purchase report")
	details, err := o.store.LoadDetails()
	if err != nil || len(details) == 0 {
		return o.fail(StateReporting, "no detail records available", err)
	}
	document, err := report.Synthesize(ctx, o.client, contextBlock, details)
	if err != nil {
		return o.fail(StateReporting, "report synthesis unavailable", err)
	}
	if err := o.store.SaveReport(document); err != nil {
		return o.fail(StateReporting, "persisting report failed", err)
	}
	o.mirror(ctx, database, sessionID, db.StageReport, document)

	o.transition(opts, StateDone, "session complete")
	return nil
}

// enrich dispatches detail collection per platform. Platforms whose
// search-stage records already carry sufficient structured fields skip the
// network round-trip and get synthesized records instead.
func (o *Orchestrator) enrich(ctx context.Context, shortlist []types.Product) {
	skip := make(map[string]bool, len(o.cfg.SkipDetailPlatforms))
	for _, platform := range o.cfg.SkipDetailPlatforms {
		skip[platform] = true
	}

	byPlatform := make(map[string][]types.Product)
	var platformOrder []string
	for _, p := range shortlist {
		if _, seen := byPlatform[p.Platform]; !seen {
			platformOrder = append(platformOrder, p.Platform)
		}
		byPlatform[p.Platform] = append(byPlatform[p.Platform], p)
	}

	for _, platform := range platformOrder {
		items := byPlatform[platform]

		if skip[platform] {
			o.synthesizeDetails(items)
			continue
		}

		collector := o.collectorFor(platform)
		if collector == nil {
			log.Printf("[pipeline] no collector registered for %s, synthesizing details", platform)
			o.synthesizeDetails(items)
			continue
		}

		if err := collector.GetDetails(ctx, o.store, items); err != nil {
			log.Printf("[pipeline] %s detail collection failed, degrading to search-stage fields: %v", platform, err)
			o.synthesizeDetails(items)
		}
	}
}

func (o *Orchestrator) synthesizeDetails(items []types.Product) {
	for _, p := range items {
		if err := o.store.WriteDetail(collect.SynthesizeDetail(p)); err != nil {
			log.Printf("[pipeline] failed to write detail record for %s: %v", p.ID, err)
		}
	}
}

func (o *Orchestrator) collectorFor(platform string) collect.Collector {
	for _, c := range o.collectors {
		if c.Platform() == platform {
			return c
		}
	}
	return nil
}

func (o *Orchestrator) transition(opts RunOptions, next State, message string) {
	o.state = next
	log.Printf("[pipeline] %s: %s", next, message)
	o.emit(opts, next, message, nil)
}

func (o *Orchestrator) fail(stage State, reason string, cause error) error {
	o.state = StateFailed
	return &StageError{Stage: stage, Reason: reason, Cause: cause}
}

func (o *Orchestrator) emit(opts RunOptions, stage State, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Stage: stage, Message: message, Content: content})
	}
}

func (o *Orchestrator) mirror(ctx context.Context, database *db.DB, sessionID uuid.UUID, stage string, content any) {
	if database == nil || sessionID == uuid.Nil {
		return
	}
	if err := database.SaveArtifact(ctx, sessionID, stage, content); err != nil {
		log.Printf("[pipeline] failed to mirror %s artifact: %v", stage, err)
	}
}

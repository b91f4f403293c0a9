package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/weiliu/dealscout/internal/llm"
	"github.com/weiliu/dealscout/internal/prompts"
	"github.com/weiliu/dealscout/internal/types"
)

// DefaultTopN is the default shortlist size.
const DefaultTopN = 5

// DefaultOracleTimeout bounds the semantic selection call. A timeout is
// treated exactly like a parse failure: the fallback takes over.
const DefaultOracleTimeout = 90 * time.Second

// Options configures one selection pass.
type Options struct {
	// TopN is the requested shortlist size.
	TopN int
	// CandidateCap bounds how many candidates are summarized into the
	// oracle request.
	CandidateCap int
	// Requirements is the user's detailed requirements text.
	Requirements string
	// ContextBlock is the rendered personalization profile.
	ContextBlock string
	// Timeout bounds the oracle call.
	Timeout time.Duration
}

// Select chooses a shortlist from the ranked candidates. The semantic oracle
// is consulted first; when the call fails, parses to nothing, or names only
// unknown ids, the deterministic fallback takes over. The only error is an
// empty candidate collection.
func Select(ctx context.Context, client llm.Client, products []types.Product, opts Options) (*types.SelectionResult, error) {
	if len(products) == 0 {
		return nil, ErrNoCandidates
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOracleTimeout
	}

	chosen := consultOracle(ctx, client, products, opts)
	if len(chosen) > 0 {
		return &types.SelectionResult{Products: chosen, Provenance: types.ProvenanceOracle}, nil
	}

	log.Printf("[selection] oracle produced no usable shortlist, falling back to sales ranking")
	return &types.SelectionResult{
		Products:   Fallback(products, opts.TopN),
		Provenance: types.ProvenanceFallback,
	}, nil
}

// consultOracle runs the primary tier. Any failure returns nil, never an
// error: the caller's fallback is the error handling.
func consultOracle(ctx context.Context, client llm.Client, products []types.Product, opts Options) []types.Product {
	if client == nil {
		return nil
	}

	summary := Summarize(products, opts.CandidateCap)
	candidatesJSON, err := json.Marshal(summary)
	if err != nil {
		log.Printf("[selection] failed to marshal candidate summary: %v", err)
		return nil
	}

	prompt := prompts.Format(prompts.MustGet("selection.json", "filter"), map[string]string{
		"Context":      opts.ContextBlock,
		"Requirements": opts.Requirements,
		"Candidates":   string(candidatesJSON),
		"TopN":         strconv.Itoa(opts.TopN),
	})

	callCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	response, err := client.GenerateJSON(callCtx, prompts.MustGet("selection.json", "system"), prompt, llm.TierStandard)
	if err != nil {
		log.Printf("[selection] oracle call failed: %v", err)
		return nil
	}

	ids := ParseIDs(response)
	if len(ids) == 0 {
		log.Printf("[selection] oracle response yielded no ids: %.100s", response)
		return nil
	}

	// Validate against the known candidate set, preserving the oracle's
	// requested order. Unknown ids are dropped silently.
	byID := make(map[string]types.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var chosen []types.Product
	picked := make(map[string]bool, len(ids))
	for _, id := range ids {
		if picked[id] {
			continue
		}
		if p, ok := byID[id]; ok {
			chosen = append(chosen, p)
			picked[id] = true
		}
		if len(chosen) == opts.TopN {
			break
		}
	}
	return chosen
}

// quotedNumberPattern extracts quoted integer-like tokens from responses that
// fail strict decoding (the ids on the target platforms are numeric).
var quotedNumberPattern = regexp.MustCompile(`"(\d+)"`)

// ParseIDs tolerantly extracts candidate ids from an oracle response. Tier
// one strips any markdown fence and strictly decodes a JSON array; ids are
// coerced to strings since models return them both quoted and bare. On decode
// failure, tier two pattern-matches quoted integer tokens. Both tiers
// converge on the same output type; an unusable response yields nil.
func ParseIDs(response string) []string {
	clean := llm.CleanJSONBlock(response)

	var raw []any
	if err := json.Unmarshal([]byte(clean), &raw); err == nil {
		ids := make([]string, 0, len(raw))
		for _, v := range raw {
			switch t := v.(type) {
			case string:
				if t != "" {
					ids = append(ids, t)
				}
			case float64:
				ids = append(ids, strconv.FormatFloat(t, 'f', -1, 64))
			}
		}
		return ids
	}

	matches := quotedNumberPattern.FindAllStringSubmatch(clean, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}

// ClarifyingQuestions asks the oracle for up to three questions that would
// sharpen the user's requirements. Best-effort: any failure yields an empty
// list, never an error.
func ClarifyingQuestions(ctx context.Context, client llm.Client, keyword string) []string {
	if client == nil {
		return nil
	}

	prompt := prompts.Format(prompts.MustGet("selection.json", "clarify"), map[string]string{
		"Keyword": keyword,
	})

	response, err := client.GenerateJSON(ctx, prompts.MustGet("selection.json", "system"), prompt, llm.TierLite)
	if err != nil {
		log.Printf("[selection] clarifying questions failed: %v", err)
		return nil
	}

	var questions []string
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(response)), &questions); err != nil {
		return nil
	}
	if len(questions) > 3 {
		questions = questions[:3]
	}
	return questions
}

// ResultSummary renders a compact human-readable form, used in progress output.
func ResultSummary(result *types.SelectionResult) string {
	return fmt.Sprintf("%d products via %s", len(result.Products), result.Provenance)
}

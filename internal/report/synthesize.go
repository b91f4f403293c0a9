// Package report invokes the external report-synthesis service on the
// enriched shortlist. The response is an opaque markdown document; there is
// no schema to enforce, but an outright failure is terminal for the pipeline:
// a report synthesized from incomplete reasoning is worse than none.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/weiliu/dealscout/internal/llm"
	"github.com/weiliu/dealscout/internal/prompts"
	"github.com/weiliu/dealscout/internal/types"
)

// DefaultTimeout bounds the synthesis call. Unlike the selection oracle,
// a timeout here has no fallback.
const DefaultTimeout = 3 * time.Minute

// Synthesize produces the final purchase decision report from the enriched
// detail records. The context block carries the user's personalization rules.
func Synthesize(ctx context.Context, client llm.Client, contextBlock string, details []types.DetailRecord) (string, error) {
	if len(details) == 0 {
		return "", fmt.Errorf("no detail records to report on")
	}

	detailsJSON, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling detail records: %w", err)
	}

	prompt := prompts.Format(prompts.MustGet("report.json", "synthesize"), map[string]string{
		"Context": contextBlock,
		"Details": string(detailsJSON),
	})

	callCtx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	document, err := client.GenerateContent(callCtx, prompts.MustGet("report.json", "system"), prompt, llm.TierAdvanced)
	if err != nil {
		return "", fmt.Errorf("report synthesis: %w", err)
	}

	document = strings.TrimSpace(document)
	if document == "" {
		return "", fmt.Errorf("report synthesis returned an empty document")
	}
	return document, nil
}

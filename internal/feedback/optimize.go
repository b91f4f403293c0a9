// Package feedback turns free-text user feedback into a profile delta via
// the semantic service and merges it into the personalization profile.
// Optimization is best-effort: it runs after the main pipeline and its
// failures never surface as pipeline errors.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/weiliu/dealscout/internal/llm"
	"github.com/weiliu/dealscout/internal/profile"
	"github.com/weiliu/dealscout/internal/prompts"
	"github.com/weiliu/dealscout/internal/schemas"
	"github.com/weiliu/dealscout/internal/types"
)

// Result reports what one optimization pass did.
type Result struct {
	// Added reports whether any profile entries were appended.
	Added bool
	Delta *types.FeedbackDelta
}

// Optimize sends the current profile and the feedback text to the semantic
// service, merges the returned partial-update document into the profile, and
// persists the profile atomically when anything changed. An unparsable
// response is a logged no-op, not an error. Re-applying identical feedback to
// an already-updated profile changes nothing.
func Optimize(ctx context.Context, client llm.Client, profilePath, userFeedback string) (*Result, error) {
	current, err := profile.Load(profilePath)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	serialized, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing profile: %w", err)
	}

	prompt := prompts.Format(prompts.MustGet("feedback.json", "optimize"), map[string]string{
		"Profile":  string(serialized),
		"Feedback": userFeedback,
	})

	response, err := client.GenerateJSON(ctx, prompts.MustGet("feedback.json", "system"), prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("feedback optimization call: %w", err)
	}

	delta := parseDelta(response)
	if delta == nil || delta.Empty() {
		log.Printf("[feedback] no profile update derived from feedback")
		return &Result{Added: false}, nil
	}

	added := profile.Merge(current, delta)
	if added == 0 {
		log.Printf("[feedback] all proposed items already present, profile unchanged")
		return &Result{Added: false, Delta: delta}, nil
	}

	if err := profile.Save(profilePath, current); err != nil {
		return nil, fmt.Errorf("persisting profile: %w", err)
	}
	log.Printf("[feedback] appended %d profile entries", added)
	return &Result{Added: true, Delta: delta}, nil
}

// parseDelta tolerantly decodes the partial-update document. Only the four
// recognized profile fields are honored; unknown fields and a malformed
// document both degrade to "no update".
func parseDelta(response string) *types.FeedbackDelta {
	clean := llm.CleanJSONBlock(response)

	if err := schemas.Validate(schemas.SchemaFeedbackDelta, []byte(clean)); err != nil {
		log.Printf("[feedback] update document rejected: %v", err)
		return nil
	}

	var delta types.FeedbackDelta
	if err := json.Unmarshal([]byte(clean), &delta); err != nil {
		log.Printf("[feedback] update document undecodable: %v", err)
		return nil
	}
	return &delta
}

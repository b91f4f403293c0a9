// Package profile manages the durable personalization document and renders
// it into the instruction block prepended to every semantic request.
package profile

import "github.com/weiliu/dealscout/internal/types"

// New returns a profile with all four preference lists empty.
func New() *types.Profile {
	return &types.Profile{
		ShoppingPrinciples:   []string{},
		BlacklistedKeywords:  []string{},
		PreferredIngredients: []string{},
		DislikedIngredients:  []string{},
	}
}

// Merge appends the delta's items to the profile, skipping items already
// present (exact string equality). Returns the number of items actually
// appended; re-applying the same delta therefore reports zero on the second
// pass.
func Merge(p *types.Profile, delta *types.FeedbackDelta) int {
	if delta == nil {
		return 0
	}
	added := 0
	added += appendNew(&p.ShoppingPrinciples, delta.ShoppingPrinciples)
	added += appendNew(&p.BlacklistedKeywords, delta.BlacklistedKeywords)
	added += appendNew(&p.PreferredIngredients, delta.PreferredIngredients)
	added += appendNew(&p.DislikedIngredients, delta.DislikedIngredients)
	return added
}

func appendNew(existing *[]string, items []string) int {
	present := make(map[string]bool, len(*existing))
	for _, item := range *existing {
		present[item] = true
	}
	added := 0
	for _, item := range items {
		if item == "" || present[item] {
			continue
		}
		*existing = append(*existing, item)
		present[item] = true
		added++
	}
	return added
}

package types

// Profile is the durable personalization document injected into every
// semantic request. Each field is an append-only set of unique strings;
// set semantics are enforced on merge, insertion order is preserved.
type Profile struct {
	ShoppingPrinciples   []string `json:"shopping_principles"`
	BlacklistedKeywords  []string `json:"blacklisted_keywords"`
	PreferredIngredients []string `json:"preferred_ingredients"`
	DislikedIngredients  []string `json:"disliked_ingredients"`
}

// FeedbackDelta is a partial profile update produced by the feedback
// optimizer. Each field lists only the new items to append; nil fields
// mean "no change".
type FeedbackDelta struct {
	ShoppingPrinciples   []string `json:"shopping_principles,omitempty"`
	BlacklistedKeywords  []string `json:"blacklisted_keywords,omitempty"`
	PreferredIngredients []string `json:"preferred_ingredients,omitempty"`
	DislikedIngredients  []string `json:"disliked_ingredients,omitempty"`
}

// Empty reports whether the delta proposes no additions at all.
func (d *FeedbackDelta) Empty() bool {
	return len(d.ShoppingPrinciples) == 0 &&
		len(d.BlacklistedKeywords) == 0 &&
		len(d.PreferredIngredients) == 0 &&
		len(d.DislikedIngredients) == 0
}

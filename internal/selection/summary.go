package selection

import "github.com/weiliu/dealscout/internal/types"

// DefaultCandidateCap bounds the number of candidates summarized into an
// oracle request. The cap exists to bound payload size, not to rank: the
// collection is already in rank order when it arrives here.
const DefaultCandidateCap = 100

// Summarize reduces the first cap products (by current rank order) to the
// minimal fields the oracle needs.
func Summarize(products []types.Product, cap int) []types.CandidateSummary {
	if cap <= 0 {
		cap = DefaultCandidateCap
	}
	if len(products) > cap {
		products = products[:cap]
	}

	summaries := make([]types.CandidateSummary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, types.CandidateSummary{
			ID:    p.ID,
			Title: p.Title,
			Price: p.Price,
			Sales: p.DealCount,
			Shop:  p.Shop,
		})
	}
	return summaries
}

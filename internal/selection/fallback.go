package selection

import (
	"sort"

	"github.com/weiliu/dealscout/internal/parsing"
	"github.com/weiliu/dealscout/internal/types"
)

// Fallback deterministically picks the topN candidates by parsed sales,
// descending. This is the availability guarantee against oracle failure: it
// always yields min(topN, len(products)) products when any exist. The sort is
// stable, so equal sales keep their rank order.
func Fallback(products []types.Product, topN int) []types.Product {
	sorted := make([]types.Product, len(products))
	copy(sorted, products)

	sort.SliceStable(sorted, func(i, j int) bool {
		return parsing.ParseSales(sorted[i].DealCount) > parsing.ParseSales(sorted[j].DealCount)
	})

	if topN > 0 && len(sorted) > topN {
		sorted = sorted[:topN]
	}
	return sorted
}

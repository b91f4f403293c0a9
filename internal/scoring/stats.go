// Package scoring ranks the merged session collection with a composite
// statistical model built from session-wide price and sales statistics.
package scoring

import (
	"math"

	"github.com/weiliu/dealscout/internal/parsing"
	"github.com/weiliu/dealscout/internal/types"
)

// GlobalStats is a snapshot of session-wide statistics, computed once per
// scoring pass. It is never mutated in place; re-score after changing the
// collection.
type GlobalStats struct {
	MeanPrice float64
	// StdPrice is the population standard deviation of positive prices,
	// floored at 1.0 so z-scores never divide by zero.
	StdPrice  float64
	MeanSales float64
}

// ComputeStats derives GlobalStats from the current merged collection. Price
// statistics consider only products with a positive parsed price; the sales
// mean runs over all products.
func ComputeStats(products []types.Product) GlobalStats {
	var validPrices []float64
	salesSum := 0.0
	for _, p := range products {
		if p.Price > 0 {
			validPrices = append(validPrices, p.Price)
		}
		salesSum += parsing.ParseSales(p.DealCount)
	}

	stats := GlobalStats{StdPrice: 1.0}
	if len(products) > 0 {
		stats.MeanSales = salesSum / float64(len(products))
	}
	if len(validPrices) == 0 {
		return stats
	}

	sum := 0.0
	for _, price := range validPrices {
		sum += price
	}
	stats.MeanPrice = sum / float64(len(validPrices))

	variance := 0.0
	for _, price := range validPrices {
		diff := price - stats.MeanPrice
		variance += diff * diff
	}
	variance /= float64(len(validPrices))
	if variance > 0 {
		stats.StdPrice = math.Sqrt(variance)
	}

	return stats
}

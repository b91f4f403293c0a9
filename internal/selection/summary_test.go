package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiliu/dealscout/internal/types"
)

func TestSummarize_ReducesFields(t *testing.T) {
	products := []types.Product{
		{ID: "1", Title: "item", Price: 99.9, Shop: "shop", DealCount: "2万+", Link: "https://example.com", Score: 87.5},
	}

	summaries := Summarize(products, 10)
	require.Len(t, summaries, 1)
	assert.Equal(t, types.CandidateSummary{
		ID:    "1",
		Title: "item",
		Price: 99.9,
		Sales: "2万+",
		Shop:  "shop",
	}, summaries[0])
}

func TestSummarize_TruncatesAtCap(t *testing.T) {
	products := make([]types.Product, 150)
	for i := range products {
		products[i] = types.Product{ID: "x"}
	}

	assert.Len(t, Summarize(products, 100), 100)
	assert.Len(t, Summarize(products, 0), DefaultCandidateCap)
	assert.Len(t, Summarize(products[:5], 100), 5)
}

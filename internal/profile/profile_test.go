package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weiliu/dealscout/internal/types"
)

func TestMerge_AppendsNewItems(t *testing.T) {
	p := New()
	delta := &types.FeedbackDelta{
		ShoppingPrinciples:  []string{"prefer wired peripherals"},
		BlacklistedKeywords: []string{"refurbished", "二手"},
	}

	added := Merge(p, delta)
	assert.Equal(t, 3, added)
	assert.Equal(t, []string{"prefer wired peripherals"}, p.ShoppingPrinciples)
	assert.Equal(t, []string{"refurbished", "二手"}, p.BlacklistedKeywords)
}

func TestMerge_Idempotent(t *testing.T) {
	p := New()
	delta := &types.FeedbackDelta{
		PreferredIngredients: []string{"aluminium frame"},
		DislikedIngredients:  []string{"nickel"},
	}

	assert.Equal(t, 2, Merge(p, delta))
	assert.Equal(t, 0, Merge(p, delta))
	assert.Len(t, p.PreferredIngredients, 1)
	assert.Len(t, p.DislikedIngredients, 1)
}

func TestMerge_SkipsExistingAndEmptyItems(t *testing.T) {
	p := New()
	p.BlacklistedKeywords = []string{"refurbished"}

	added := Merge(p, &types.FeedbackDelta{
		BlacklistedKeywords: []string{"refurbished", "", "open-box"},
	})
	assert.Equal(t, 1, added)
	assert.Equal(t, []string{"refurbished", "open-box"}, p.BlacklistedKeywords)
}

func TestMerge_NilDelta(t *testing.T) {
	p := New()
	assert.Equal(t, 0, Merge(p, nil))
}

func TestMerge_PreservesInsertionOrder(t *testing.T) {
	p := New()
	Merge(p, &types.FeedbackDelta{ShoppingPrinciples: []string{"b", "a"}})
	Merge(p, &types.FeedbackDelta{ShoppingPrinciples: []string{"c"}})

	assert.Equal(t, []string{"b", "a", "c"}, p.ShoppingPrinciples)
}

func TestNew_AllListsEmptyNotNil(t *testing.T) {
	p := New()
	assert.NotNil(t, p.ShoppingPrinciples)
	assert.NotNil(t, p.BlacklistedKeywords)
	assert.NotNil(t, p.PreferredIngredients)
	assert.NotNil(t, p.DislikedIngredients)
}

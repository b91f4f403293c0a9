package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiliu/dealscout/internal/types"
)

func sampleCollection() []types.Product {
	return []types.Product{
		{ID: "1", Title: "Cherry MX机械键盘 87键 红轴 游戏办公", Price: 399, Shop: "Cherry京东自营旗舰店", DealCount: "2万+"},
		{ID: "2", Title: "机械键盘104键青轴 背光电竞", Price: 199, Shop: "某某旗舰店", DealCount: "5000+"},
		{ID: "3", Title: "键帽", Price: 29.9, Shop: "小店", DealCount: "100+"},
		{ID: "4", Title: "无线机械键盘三模热插拔 全键无冲", Price: 549, Shop: "某某专营店", DealCount: "800+"},
	}
}

func TestRank_Deterministic(t *testing.T) {
	first := Rank(sampleCollection(), DefaultConfig())
	second := Rank(sampleCollection(), DefaultConfig())
	assert.Equal(t, first, second)
}

func TestRank_ScoresWithinRange(t *testing.T) {
	ranked := Rank(sampleCollection(), DefaultConfig())
	require.Len(t, ranked, 4)
	for _, p := range ranked {
		assert.GreaterOrEqual(t, p.Score, 0.0, p.ID)
		assert.LessOrEqual(t, p.Score, 100.0, p.ID)
	}
}

func TestRank_SortedDescending(t *testing.T) {
	ranked := Rank(sampleCollection(), DefaultConfig())
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRank_StableForEqualScores(t *testing.T) {
	// Two indistinguishable products must keep their insertion order.
	products := []types.Product{
		{ID: "first", Title: "一样的机械键盘一样的描述文本", Price: 100, Shop: "店", DealCount: "100"},
		{ID: "second", Title: "一样的机械键盘一样的描述文本", Price: 100, Shop: "店", DealCount: "100"},
	}

	ranked := Rank(products, DefaultConfig())
	require.Len(t, ranked, 2)
	assert.Equal(t, ranked[0].Score, ranked[1].Score)
	assert.Equal(t, "first", ranked[0].ID)
	assert.Equal(t, "second", ranked[1].ID)
}

func TestRank_EmptyCollection(t *testing.T) {
	assert.Nil(t, Rank(nil, DefaultConfig()))
	assert.Nil(t, Rank([]types.Product{}, DefaultConfig()))
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	products := sampleCollection()
	Rank(products, DefaultConfig())
	assert.Equal(t, 0.0, products[0].Score)
	assert.Equal(t, "1", products[0].ID)
}

func TestScorer_ShopTierLadder(t *testing.T) {
	s := NewScorer(sampleCollection(), DefaultConfig())

	assert.Equal(t, 100.0, s.shopSubscore("京东自营"))
	assert.Equal(t, 80.0, s.shopSubscore("罗技旗舰店"))
	assert.Equal(t, 60.0, s.shopSubscore("数码专营店"))
	assert.Equal(t, 50.0, s.shopSubscore("普通小店"))
}

func TestScorer_FirstMatchingTierWins(t *testing.T) {
	s := NewScorer(sampleCollection(), DefaultConfig())

	// Both 自营 and 旗舰 appear; the higher tier comes first in the ladder.
	assert.Equal(t, 100.0, s.shopSubscore("京东自营旗舰店"))
}

func TestScorer_RelevanceByTitleLength(t *testing.T) {
	s := NewScorer(sampleCollection(), DefaultConfig())

	assert.Equal(t, 50.0, s.relevanceSubscore("键帽"))
	assert.Equal(t, 100.0, s.relevanceSubscore("Cherry MX机械键盘 87键 红轴 游戏办公"))
	// Threshold counts runes, not bytes.
	assert.Equal(t, 50.0, s.relevanceSubscore("十个字的标题正好十个"))
	assert.Equal(t, 100.0, s.relevanceSubscore("十一个字的标题正好十一"))
}

func TestScorer_AccessoryPriceFloor(t *testing.T) {
	// Mean price is 300; a 29.9 item is under 20% of the mean and gets the
	// flat accessory subscore.
	products := []types.Product{
		{ID: "1", Price: 400},
		{ID: "2", Price: 200},
	}
	s := NewScorer(products, DefaultConfig())

	assert.Equal(t, 20.0, s.priceSubscore(29.9))
}

func TestScorer_PricePeaksBelowMean(t *testing.T) {
	products := []types.Product{
		{ID: "1", Price: 100},
		{ID: "2", Price: 300},
	}
	s := NewScorer(products, DefaultConfig())

	// Target is 0.8 * mean = 160; scoring there beats scoring at the mean.
	atTarget := s.priceSubscore(160)
	atMean := s.priceSubscore(200)
	assert.Greater(t, atTarget, atMean)
	assert.InDelta(t, 100.0, atTarget, 1e-9)
}

func TestScorer_SalesRatioCapped(t *testing.T) {
	products := []types.Product{
		{ID: "1", DealCount: "100", Price: 10},
		{ID: "2", DealCount: "100", Price: 10},
	}
	s := NewScorer(products, DefaultConfig())

	// Three times the mean saturates; beyond that the subscore is flat.
	assert.Equal(t, s.salesSubscore(300), s.salesSubscore(10000))
	assert.InDelta(t, 99.0, s.salesSubscore(300), 1e-9)
}

func TestScorer_ZeroMeanSales(t *testing.T) {
	products := []types.Product{{ID: "1", DealCount: "abc", Price: 10}}
	s := NewScorer(products, DefaultConfig())

	assert.Equal(t, 0.0, s.salesSubscore(50))
}

func TestScorer_CustomTierConfig(t *testing.T) {
	cfg := Config{
		ShopTiers: []TierRule{
			{Keywords: []string{"Official", "官方"}, Bonus: 40},
		},
		TitleLengthThreshold: 5,
	}
	s := NewScorer(sampleCollection(), cfg)

	assert.Equal(t, 90.0, s.shopSubscore("Official Store"))
	assert.Equal(t, 90.0, s.shopSubscore("官方店"))
	assert.Equal(t, 50.0, s.shopSubscore("自营")) // default ladder not in play
}

package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/weiliu/dealscout/internal/parsing"
	"github.com/weiliu/dealscout/internal/types"
)

// Composite weights. Price and sales dominate, shop reputation matters, title
// relevance is a tie-nudge.
const (
	priceWeight     = 0.30
	salesWeight     = 0.30
	shopWeight      = 0.25
	relevanceWeight = 0.15
)

// Price subscore shape: reward slightly-below-average pricing as best value,
// and flag suspiciously cheap listings as likely accessories or mis-listings.
const (
	targetPriceRatio   = 0.8
	accessoryRatio     = 0.2
	accessorySubscore  = 20.0
	salesRatioCap      = 3.0
	salesRatioScale    = 33.0
	shopBaseSubscore   = 50.0
	relevanceHighScore = 100.0
	relevanceLowScore  = 50.0
)

// TierRule awards a bonus when a shop name contains any of its keywords.
type TierRule struct {
	Keywords []string `json:"keywords"`
	Bonus    float64  `json:"bonus"`
}

// Config externalizes the language-specific heuristics of the model: the shop
// tier ladder and the descriptive-title length threshold.
type Config struct {
	// ShopTiers are checked in order; the first matching tier wins.
	ShopTiers []TierRule `json:"shop_tiers"`
	// TitleLengthThreshold is the minimal rune count of a descriptive,
	// non-spam title.
	TitleLengthThreshold int `json:"title_length_threshold"`
}

// DefaultConfig returns the tier ladder and threshold tuned for the CJK
// marketplaces the default collectors target.
func DefaultConfig() Config {
	return Config{
		ShopTiers: []TierRule{
			{Keywords: []string{"自营"}, Bonus: 50}, // self-operated
			{Keywords: []string{"旗舰"}, Bonus: 30}, // flagship store
			{Keywords: []string{"专营"}, Bonus: 10}, // specialty store
		},
		TitleLengthThreshold: 10,
	}
}

// Scorer computes composite scores against a fixed GlobalStats snapshot.
type Scorer struct {
	stats GlobalStats
	cfg   Config
}

// NewScorer snapshots statistics over the collection. The scorer is a
// deterministic pure function of that snapshot and never errors.
func NewScorer(products []types.Product, cfg Config) *Scorer {
	return &Scorer{stats: ComputeStats(products), cfg: cfg}
}

// Stats returns the snapshot the scorer was built over.
func (s *Scorer) Stats() GlobalStats {
	return s.stats
}

// Score computes the composite score for one product, rounded to two
// decimals. Scores lie in [0, 100].
func (s *Scorer) Score(p types.Product) float64 {
	price := s.priceSubscore(p.Price)
	sales := s.salesSubscore(parsing.ParseSales(p.DealCount))
	shop := s.shopSubscore(p.Shop)
	relevance := s.relevanceSubscore(p.Title)

	composite := priceWeight*price + salesWeight*sales + shopWeight*shop + relevanceWeight*relevance
	return math.Round(composite*100) / 100
}

// priceSubscore is Gaussian-shaped, peaked slightly below the mean price.
func (s *Scorer) priceSubscore(price float64) float64 {
	if price < s.stats.MeanPrice*accessoryRatio {
		return accessorySubscore
	}
	target := s.stats.MeanPrice * targetPriceRatio
	z := (price - target) / s.stats.StdPrice
	return math.Exp(-(z*z)/2) * 100
}

// salesSubscore rewards sales relative to the session mean, capped so that
// three times the average saturates the subscore.
func (s *Scorer) salesSubscore(sales float64) float64 {
	if s.stats.MeanSales <= 0 {
		return 0
	}
	ratio := sales / s.stats.MeanSales
	if ratio > salesRatioCap {
		ratio = salesRatioCap
	}
	return ratio * salesRatioScale
}

// shopSubscore applies the configured tier ladder on top of the base score.
func (s *Scorer) shopSubscore(shop string) float64 {
	score := shopBaseSubscore
	for _, tier := range s.cfg.ShopTiers {
		for _, keyword := range tier.Keywords {
			if keyword != "" && strings.Contains(shop, keyword) {
				return score + tier.Bonus
			}
		}
	}
	return score
}

// relevanceSubscore is a binary heuristic: long titles are descriptive,
// short ones are likely spam or accessories.
func (s *Scorer) relevanceSubscore(title string) float64 {
	if len([]rune(title)) > s.cfg.TitleLengthThreshold {
		return relevanceHighScore
	}
	return relevanceLowScore
}

// Rank scores every product and returns the collection sorted descending by
// score. The sort is stable: equal scores keep their first-insertion order.
// An empty input yields an empty result; callers treat that as a
// collection-stage failure, not a scoring error.
func Rank(products []types.Product, cfg Config) []types.Product {
	if len(products) == 0 {
		return nil
	}

	scorer := NewScorer(products, cfg)
	ranked := make([]types.Product, len(products))
	copy(ranked, products)
	for i := range ranked {
		ranked[i].Score = scorer.Score(ranked[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

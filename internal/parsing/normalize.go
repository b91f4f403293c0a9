package parsing

import (
	"fmt"
	"strconv"

	"github.com/weiliu/dealscout/internal/types"
)

// NormalizeListing converts one raw listing into a canonical Product. It is a
// pure function of its input: missing fields receive defaults and malformed
// prices degrade to 0.0, but normalization itself never fails.
func NormalizeListing(raw types.RawListing, platform string) types.Product {
	return types.Product{
		ID:        fieldString(raw.Fields, "id", ""),
		Title:     fieldString(raw.Fields, "title", types.DefaultTitle),
		Price:     fieldPrice(raw.Fields, "price"),
		Shop:      fieldString(raw.Fields, "shop", types.DefaultShop),
		Platform:  platform,
		Link:      fieldString(raw.Fields, "link", ""),
		DealCount: fieldString(raw.Fields, "deal_count", types.DefaultDealCount),
	}
}

// fieldString extracts a string field, stringifying numeric values (upstream
// collectors disagree on whether IDs are strings or numbers).
func fieldString(fields map[string]any, key, fallback string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return fallback
		}
		return t
	case float64:
		// JSON numbers decode as float64; IDs and counts are integral.
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// fieldPrice extracts a price that may arrive as a number or a decorated string.
func fieldPrice(fields map[string]any, key string) float64 {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0.0
	}
	switch t := v.(type) {
	case float64:
		if t < 0 {
			return 0.0
		}
		return t
	case int:
		if t < 0 {
			return 0.0
		}
		return float64(t)
	case string:
		return ParsePrice(t)
	default:
		return 0.0
	}
}

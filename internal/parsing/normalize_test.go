package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weiliu/dealscout/internal/types"
)

func TestNormalizeListing_CompleteRecord(t *testing.T) {
	raw := types.RawListing{
		Platform: "JD",
		Fields: map[string]any{
			"id":         "100012043978",
			"title":      "Cherry MX机械键盘 87键 红轴",
			"price":      "¥399.00",
			"shop":       "Cherry京东自营旗舰店",
			"deal_count": "2万+条评价",
			"link":       "https://item.jd.com/100012043978.html",
		},
	}

	p := NormalizeListing(raw, "JD")
	assert.Equal(t, "100012043978", p.ID)
	assert.Equal(t, "Cherry MX机械键盘 87键 红轴", p.Title)
	assert.Equal(t, 399.00, p.Price)
	assert.Equal(t, "Cherry京东自营旗舰店", p.Shop)
	assert.Equal(t, "JD", p.Platform)
	assert.Equal(t, "2万+条评价", p.DealCount)
}

func TestNormalizeListing_MissingFieldsGetDefaults(t *testing.T) {
	p := NormalizeListing(types.RawListing{Fields: map[string]any{}}, "Taobao")

	assert.Equal(t, "", p.ID)
	assert.Equal(t, types.DefaultTitle, p.Title)
	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, types.DefaultShop, p.Shop)
	assert.Equal(t, types.DefaultDealCount, p.DealCount)
	assert.Equal(t, "Taobao", p.Platform)
}

func TestNormalizeListing_NumericFieldsCoerced(t *testing.T) {
	// Upstream JSON decoding yields float64 for numeric ids and prices.
	raw := types.RawListing{
		Fields: map[string]any{
			"id":    float64(123456),
			"price": float64(89.9),
		},
	}

	p := NormalizeListing(raw, "JD")
	assert.Equal(t, "123456", p.ID)
	assert.Equal(t, 89.9, p.Price)
}

func TestNormalizeListing_MalformedPriceDegrades(t *testing.T) {
	raw := types.RawListing{
		Fields: map[string]any{
			"id":    "1",
			"price": "暂无报价",
		},
	}

	p := NormalizeListing(raw, "JD")
	assert.Equal(t, 0.0, p.Price)
}

func TestNormalizeListing_NegativePriceDegrades(t *testing.T) {
	raw := types.RawListing{
		Fields: map[string]any{
			"id":    "1",
			"price": float64(-10),
		},
	}

	p := NormalizeListing(raw, "JD")
	assert.Equal(t, 0.0, p.Price)
}

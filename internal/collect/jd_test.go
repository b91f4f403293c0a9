package collect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiliu/dealscout/internal/types"
)

const jdSearchFixture = `
<html><body>
<div id="J_goodsList"><ul>
  <li class="gl-item" data-sku="100012043978">
    <div class="p-name"><a><em>Cherry MX机械键盘 87键 红轴 游戏办公两用</em></a></div>
    <div class="p-price"><strong><i>399.00</i></strong></div>
    <div class="p-shop"><a>Cherry京东自营旗舰店</a></div>
    <div class="p-commit"><a>2万+条评价</a></div>
  </li>
  <li class="gl-item" data-sku="100030573708">
    <div class="p-name"><a><em>键帽</em></a></div>
    <div class="p-price"><strong><i>29.90</i></strong></div>
    <div class="p-shop"><a>某某专营店</a></div>
    <div class="p-commit"><a>500+条评价</a></div>
  </li>
</ul></div>
</body></html>`

func TestJDParseSearchPage(t *testing.T) {
	c := NewJDCollector()

	products, err := c.parseSearchPage(jdSearchFixture)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "100012043978", products[0].ID)
	assert.Equal(t, "Cherry MX机械键盘 87键 红轴 游戏办公两用", products[0].Title)
	assert.Equal(t, 399.00, products[0].Price)
	assert.Equal(t, "Cherry京东自营旗舰店", products[0].Shop)
	assert.Equal(t, "2万+条评价", products[0].DealCount)
	assert.Equal(t, PlatformJD, products[0].Platform)
	assert.Equal(t, "https://item.jd.com/100012043978.html", products[0].Link)
}

func TestJDParseSearchPage_NoResults(t *testing.T) {
	c := NewJDCollector()

	products, err := c.parseSearchPage("<html><body></body></html>")
	require.NoError(t, err)
	assert.Empty(t, products)
}

type captureSink struct {
	records []types.DetailRecord
}

func (s *captureSink) WriteDetail(record types.DetailRecord) error {
	s.records = append(s.records, record)
	return nil
}

func TestJDGetDetails_SynthesizesFromSearchFields(t *testing.T) {
	c := NewJDCollector()
	sink := &captureSink{}

	candidates := []types.Product{
		{ID: "1", Title: "item", Price: 100, Shop: "shop", Platform: PlatformJD, DealCount: "2000+条评价"},
	}
	require.NoError(t, c.GetDetails(context.Background(), sink, candidates))
	require.Len(t, sink.records, 1)

	record := sink.records[0]
	assert.Equal(t, "1", record.ID)
	assert.Equal(t, 100.0, record.Price)
}

func TestSynthesizeDetail_CarriesPlatformAndPopularity(t *testing.T) {
	record := SynthesizeDetail(types.Product{
		ID:        "9",
		Title:     "item",
		Platform:  PlatformJD,
		DealCount: "500+",
	})

	require.Len(t, record.Specs, 2)
	assert.Equal(t, types.Spec{Name: "platform", Value: PlatformJD}, record.Specs[0])
	assert.Equal(t, types.Spec{Name: "popularity", Value: "500+"}, record.Specs[1])
}

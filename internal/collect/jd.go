package collect

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/weiliu/dealscout/internal/fetch"
	"github.com/weiliu/dealscout/internal/parsing"
	"github.com/weiliu/dealscout/internal/types"
)

// PlatformJD tags records captured from JD search pages.
const PlatformJD = "JD"

// JDCollector captures listings from JD keyword-search result pages. Search
// results already carry price, shop and review counts, so this platform is
// normally configured to skip the detail round-trip.
type JDCollector struct {
	opts *fetch.Options
}

// NewJDCollector creates a JD collector with default fetch options.
func NewJDCollector() *JDCollector {
	return &JDCollector{opts: fetch.DefaultOptions()}
}

// Platform returns the platform tag.
func (c *JDCollector) Platform() string { return PlatformJD }

// Search fetches up to maxPages of search results for the keyword.
func (c *JDCollector) Search(ctx context.Context, keyword string, maxPages int) ([]types.Product, error) {
	if maxPages < 1 {
		maxPages = 1
	}

	var products []types.Product
	for page := 1; page <= maxPages; page++ {
		// JD numbers result pages oddly: page N of the UI is 2N-1 upstream.
		searchURL := fmt.Sprintf("https://search.jd.com/Search?keyword=%s&page=%d",
			url.QueryEscape(keyword), 2*page-1)

		result, err := fetch.URL(ctx, searchURL, c.opts)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("JD search failed: %w", err)
			}
			// Later pages are best-effort; keep what we have.
			break
		}

		batch, err := c.parseSearchPage(result.HTML)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			break
		}
		if len(batch) == 0 {
			break
		}
		products = append(products, batch...)
	}

	return products, nil
}

func (c *JDCollector) parseSearchPage(html string) ([]types.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("JD result page parse failed: %w", err)
	}

	var products []types.Product
	doc.Find("#J_goodsList li.gl-item").Each(func(_ int, item *goquery.Selection) {
		sku, _ := item.Attr("data-sku")
		raw := types.RawListing{
			Platform: PlatformJD,
			Fields: map[string]any{
				"id":         sku,
				"title":      strings.TrimSpace(item.Find(".p-name em").Text()),
				"price":      strings.TrimSpace(item.Find(".p-price i").Text()),
				"shop":       strings.TrimSpace(item.Find(".p-shop a").Text()),
				"deal_count": strings.TrimSpace(item.Find(".p-commit a").Text()),
				"link":       "https://item.jd.com/" + sku + ".html",
			},
		}
		products = append(products, parsing.NormalizeListing(raw, PlatformJD))
	})

	return products, nil
}

// GetDetails synthesizes detail records from the search-stage fields. JD
// search tiles already expose everything the report needs, so no further
// network round-trips are made.
func (c *JDCollector) GetDetails(_ context.Context, sink DetailSink, candidates []types.Product) error {
	for _, p := range candidates {
		record := SynthesizeDetail(p)
		if err := sink.WriteDetail(record); err != nil {
			return fmt.Errorf("writing JD detail %s: %w", p.ID, err)
		}
	}
	return nil
}

// SynthesizeDetail builds a detail record from search-stage fields alone, for
// platforms whose listings are rich enough to skip detail collection.
func SynthesizeDetail(p types.Product) types.DetailRecord {
	return types.DetailRecord{
		ID:    p.ID,
		Title: p.Title,
		Price: p.Price,
		Shop:  p.Shop,
		Link:  p.Link,
		Specs: []types.Spec{
			{Name: "platform", Value: p.Platform},
			{Name: "popularity", Value: p.DealCount},
		},
	}
}

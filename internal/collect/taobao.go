package collect

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/weiliu/dealscout/internal/fetch"
	"github.com/weiliu/dealscout/internal/parsing"
	"github.com/weiliu/dealscout/internal/types"
)

// PlatformTaobao tags records captured from Taobao search pages.
const PlatformTaobao = "Taobao"

// Caps applied to enrichment output, matching what the report can digest.
const (
	maxDetailSpecs   = 20
	maxDetailReviews = 15
)

// taobaoRenderTimeout bounds a single headless-browser page render.
const taobaoRenderTimeout = 45 * time.Second

// TaobaoCollector captures listings from Taobao. Search pages there are
// script-rendered, so both search and detail collection go through the
// headless browser. Detail requests are paced: the platform rate-limits hard
// and a lockout kills the rest of the session.
type TaobaoCollector struct {
	pacer *Pacer
}

// NewTaobaoCollector creates a Taobao collector with the given detail-request
// pacing interval.
func NewTaobaoCollector(detailInterval time.Duration) *TaobaoCollector {
	return &TaobaoCollector{pacer: NewPacer(detailInterval)}
}

// Platform returns the platform tag.
func (c *TaobaoCollector) Platform() string { return PlatformTaobao }

// Search renders up to maxPages of search results and extracts listings.
func (c *TaobaoCollector) Search(ctx context.Context, keyword string, maxPages int) ([]types.Product, error) {
	if maxPages < 1 {
		maxPages = 1
	}

	var products []types.Product
	for page := 0; page < maxPages; page++ {
		searchURL := fmt.Sprintf("https://s.taobao.com/search?q=%s&s=%d",
			url.QueryEscape(keyword), page*44)

		html, err := fetch.RenderPage(ctx, searchURL, taobaoRenderTimeout)
		if err != nil {
			if page == 0 {
				return nil, fmt.Errorf("taobao search failed: %w", err)
			}
			break
		}

		batch, err := c.parseSearchPage(html)
		if err != nil {
			if page == 0 {
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

func (c *TaobaoCollector) parseSearchPage(html string) ([]types.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("taobao result page parse failed: %w", err)
	}

	var products []types.Product
	doc.Find("div[data-nid], a[data-nid]").Each(func(_ int, item *goquery.Selection) {
		nid, _ := item.Attr("data-nid")
		raw := types.RawListing{
			Platform: PlatformTaobao,
			Fields: map[string]any{
				"id":         nid,
				"title":      strings.TrimSpace(item.Find("[class*=title], .row-2").First().Text()),
				"price":      strings.TrimSpace(item.Find("[class*=price] strong, [class*=priceInt]").First().Text()),
				"shop":       strings.TrimSpace(item.Find("[class*=shopName], .shop a").First().Text()),
				"deal_count": strings.TrimSpace(item.Find("[class*=realSales], .deal-cnt").First().Text()),
				"link":       "https://item.taobao.com/item.htm?id=" + nid,
			},
		}
		products = append(products, parsing.NormalizeListing(raw, PlatformTaobao))
	})

	return products, nil
}

// GetDetails renders each candidate's item page, extracts specs and selected
// reviews, and writes one detail record per candidate. A per-item failure
// degrades that item to the search-stage fields and moves on.
func (c *TaobaoCollector) GetDetails(ctx context.Context, sink DetailSink, candidates []types.Product) error {
	for _, p := range candidates {
		if err := c.pacer.Wait(ctx); err != nil {
			return fmt.Errorf("detail pacing interrupted: %w", err)
		}

		record, err := c.fetchDetail(ctx, p)
		if err != nil {
			log.Printf("[collect] taobao detail for %s failed, keeping search-stage fields: %v", p.ID, err)
			record = SynthesizeDetail(p)
		}
		if err := sink.WriteDetail(record); err != nil {
			return fmt.Errorf("writing taobao detail %s: %w", p.ID, err)
		}
	}
	return nil
}

func (c *TaobaoCollector) fetchDetail(ctx context.Context, p types.Product) (types.DetailRecord, error) {
	html, err := fetch.RenderPage(ctx, p.Link, taobaoRenderTimeout)
	if err != nil {
		return types.DetailRecord{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return types.DetailRecord{}, fmt.Errorf("taobao detail page parse failed: %w", err)
	}

	record := types.DetailRecord{
		ID:    p.ID,
		Title: p.Title,
		Price: p.Price,
		Shop:  p.Shop,
		Link:  p.Link,
	}

	doc.Find("ul.attributes-list li, [class*=ItemAttribute] [class*=item]").Each(func(_ int, s *goquery.Selection) {
		if len(record.Specs) >= maxDetailSpecs {
			return
		}
		name, value, ok := splitSpec(strings.TrimSpace(s.Text()))
		if ok {
			record.Specs = append(record.Specs, types.Spec{Name: name, Value: value})
		}
	})

	doc.Find(".tm-rate-fulltxt, [class*=Comment] [class*=content]").Each(func(_ int, s *goquery.Selection) {
		if len(record.Reviews) >= maxDetailReviews {
			return
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			record.Reviews = append(record.Reviews, text)
		}
	})

	return record, nil
}

// splitSpec splits "name: value" or full-width "name：value" attribute text.
func splitSpec(text string) (string, string, bool) {
	for _, sep := range []string{":", "："} {
		if idx := strings.Index(text, sep); idx > 0 {
			name := strings.TrimSpace(text[:idx])
			value := strings.TrimSpace(text[idx+len(sep):])
			if name != "" && value != "" {
				return name, value, true
			}
		}
	}
	return "", "", false
}

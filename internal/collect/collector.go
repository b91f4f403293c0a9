// Package collect defines the platform collector contract and the
// session-scoped merge of their output.
package collect

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/weiliu/dealscout/internal/types"
)

// DetailSink receives per-item detail records during enrichment. The session
// store implements this; collectors stay ignorant of where records land.
type DetailSink interface {
	WriteDetail(record types.DetailRecord) error
}

// Collector is the capability contract every platform collector implements.
// Implementations are opaque producers of canonical products; how they
// acquire raw listings (HTTP, headless browser, ...) is their own business.
type Collector interface {
	// Platform returns the platform tag stamped on produced records.
	Platform() string
	// Search fetches up to maxPages of listings for a keyword.
	Search(ctx context.Context, keyword string, maxPages int) ([]types.Product, error)
	// GetDetails enriches the given candidates, writing one detail record
	// per candidate to the sink. Per-item failures must not abort the batch.
	GetDetails(ctx context.Context, sink DetailSink, candidates []types.Product) error
}

// Result holds one collector's contribution to a session.
type Result struct {
	Platform string
	Products []types.Product
	Err      error
}

// SearchAll invokes every collector for the keyword and merges their batches
// into the accumulator. Collectors run concurrently, but batches are merged
// in registration order so the first-writer-wins tie-break stays
// deterministic regardless of completion order. A collector's failure is
// isolated: it is logged, contributes nothing, and does not abort siblings.
func SearchAll(ctx context.Context, collectors []Collector, acc *Accumulator, keyword string, maxPages int) []Result {
	results := make([]Result, len(collectors))

	g, gCtx := errgroup.WithContext(ctx)
	for i, c := range collectors {
		g.Go(func() error {
			products, err := c.Search(gCtx, keyword, maxPages)
			results[i] = Result{Platform: c.Platform(), Products: products, Err: err}
			return nil
		})
	}
	// Goroutines never return errors; failures are carried in results.
	_ = g.Wait()

	for _, r := range results {
		if r.Err != nil {
			log.Printf("[collect] %s search failed: %v", r.Platform, r.Err)
			continue
		}
		acc.AddBatch(r.Products)
	}
	return results
}

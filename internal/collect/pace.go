package collect

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDetailInterval is the default delay between detail-page requests.
// The upstream platforms rate-limit aggressively; tripping their limits can
// lock out the whole session, so this is shared-resource protection rather
// than a performance knob.
const DefaultDetailInterval = 3 * time.Second

// Pacer enforces a minimum interval between successive detail requests.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer with the given inter-request interval. A
// non-positive interval falls back to DefaultDetailInterval.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = DefaultDetailInterval
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next request is allowed or the context is done.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

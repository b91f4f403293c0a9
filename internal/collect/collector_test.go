package collect

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiliu/dealscout/internal/types"
)

// fakeCollector returns a canned batch (or error) after an optional delay,
// to exercise completion-order independence.
type fakeCollector struct {
	platform string
	batch    []types.Product
	err      error
	delay    time.Duration
}

func (f *fakeCollector) Platform() string { return f.platform }

func (f *fakeCollector) Search(ctx context.Context, _ string, _ int) ([]types.Product, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.batch, f.err
}

func (f *fakeCollector) GetDetails(_ context.Context, sink DetailSink, candidates []types.Product) error {
	for _, p := range candidates {
		if err := sink.WriteDetail(SynthesizeDetail(p)); err != nil {
			return err
		}
	}
	return nil
}

func TestSearchAll_MergesInRegistrationOrder(t *testing.T) {
	// The first collector is slower than the second; its batch must still
	// merge first.
	first := &fakeCollector{
		platform: "JD",
		batch:    []types.Product{prod("1", "jd item"), prod("2", "jd item 2")},
		delay:    30 * time.Millisecond,
	}
	second := &fakeCollector{
		platform: "Taobao",
		batch:    []types.Product{prod("2", "tb duplicate"), prod("3", "tb item")},
	}

	acc := NewAccumulator()
	results := SearchAll(context.Background(), []Collector{first, second}, acc, "keyboard", 1)

	require.Len(t, results, 2)
	assert.Equal(t, "JD", results[0].Platform)
	assert.Equal(t, "Taobao", results[1].Platform)

	products := acc.Products()
	require.Len(t, products, 3)
	assert.Equal(t, "jd item 2", products[1].Title) // id 2 captured by JD first
	assert.Equal(t, "3", products[2].ID)
}

func TestSearchAll_FailureIsIsolated(t *testing.T) {
	broken := &fakeCollector{platform: "JD", err: fmt.Errorf("blocked")}
	working := &fakeCollector{platform: "Taobao", batch: []types.Product{prod("1", "ok")}}

	acc := NewAccumulator()
	results := SearchAll(context.Background(), []Collector{broken, working}, acc, "keyboard", 1)

	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 1, acc.Len())
}

func TestSearchAll_NoCollectors(t *testing.T) {
	acc := NewAccumulator()
	results := SearchAll(context.Background(), nil, acc, "keyboard", 1)

	assert.Empty(t, results)
	assert.Equal(t, 0, acc.Len())
}

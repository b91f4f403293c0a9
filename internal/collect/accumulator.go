package collect

import "github.com/weiliu/dealscout/internal/types"

// Accumulator merges listings arriving from multiple capture strategies into
// one session-scoped, identity-unique collection. The merge is
// first-writer-wins: the earliest-captured record for a given id is
// authoritative, later captures are treated as corroboration and dropped.
// Insertion order of first captures is preserved for stable tie-breaking in
// later stages.
type Accumulator struct {
	seen     map[string]bool
	products []types.Product
}

// NewAccumulator creates an empty session accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{seen: make(map[string]bool)}
}

// Add appends a candidate unless its id has been seen before. Records with an
// empty id are always appended since they cannot collide meaningfully.
// Returns true when the candidate was kept.
func (a *Accumulator) Add(candidate types.Product) bool {
	if candidate.ID != "" && a.seen[candidate.ID] {
		return false
	}
	a.seen[candidate.ID] = true
	a.products = append(a.products, candidate)
	return true
}

// AddBatch adds every candidate of a batch in order.
func (a *Accumulator) AddBatch(batch []types.Product) {
	for _, p := range batch {
		a.Add(p)
	}
}

// Products returns the deduplicated collection in first-insertion order.
func (a *Accumulator) Products() []types.Product {
	return a.products
}

// Len returns the number of unique products accumulated so far.
func (a *Accumulator) Len() int {
	return len(a.products)
}

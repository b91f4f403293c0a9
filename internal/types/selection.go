package types

// Provenance records which tier of the selection policy produced a shortlist.
type Provenance string

// Shortlists come either from the semantic oracle or the deterministic fallback.
const (
	ProvenanceOracle   Provenance = "oracle"
	ProvenanceFallback Provenance = "fallback"
)

// CandidateSummary is the reduced form of a Product sent to the selection
// oracle. The candidate list is truncated to a configurable cap before
// summarizing to bound request size.
type CandidateSummary struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Sales string  `json:"sales"`
	Shop  string  `json:"shop"`
}

// SelectionResult pairs the chosen shortlist with its provenance.
type SelectionResult struct {
	Products   []Product  `json:"products"`
	Provenance Provenance `json:"provenance"`
}

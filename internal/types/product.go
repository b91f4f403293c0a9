// Package types defines the shared data structures passed between pipeline stages.
package types

// RawListing is a single platform-specific record as produced by a collector,
// before normalization. It only exists for the duration of one Normalize call.
type RawListing struct {
	// Platform tags the collector that produced the record.
	Platform string
	// Fields holds the loosely-typed key/value payload captured upstream.
	Fields map[string]any
}

// Spec is one name/value pair from a product's specification table.
type Spec struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is the canonical, platform-agnostic listing record used throughout
// scoring and selection. IDs are unique within a session per platform
// namespace; once scored, a Product is only mutated by detail enrichment.
type Product struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Shop     string  `json:"shop"`
	Platform string  `json:"platform"`
	Link     string  `json:"link"`
	// DealCount carries the raw sales/popularity text as captured
	// (e.g. "2000+条评价", "20万+"). Parse with parsing.ParseSales.
	DealCount string  `json:"deal_count"`
	Score     float64 `json:"score"`

	// Enrichment fields, populated during the detail stage.
	Specs   []Spec   `json:"specs,omitempty"`
	Reviews []string `json:"reviews,omitempty"`
}

// DetailRecord is the per-item output of the enrichment stage, keyed by
// product ID. Specs are capped at 20 entries and reviews at 15 by the
// collectors that write them.
type DetailRecord struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Price   float64  `json:"price"`
	Shop    string   `json:"shop"`
	Link    string   `json:"link"`
	Specs   []Spec   `json:"specs,omitempty"`
	Reviews []string `json:"reviews,omitempty"`
}

// Defaults applied by the normalizer when a raw listing omits a field.
const (
	DefaultTitle     = "unknown product"
	DefaultShop      = "unknown shop"
	DefaultDealCount = "0"
)

// Package selection implements the two-tier shortlist chooser: a semantic
// oracle consulted first, and a deterministic fallback that guarantees a
// non-empty shortlist whenever any candidates exist.
package selection

import "errors"

// ErrNoCandidates is returned when no shortlist can be formed at all because
// the scored collection is empty. It is the only selection error surfaced to
// the pipeline; every oracle failure is recovered by the fallback.
var ErrNoCandidates = errors.New("selection: no candidates to choose from")

package profile

import (
	"fmt"
	"strings"

	"github.com/weiliu/dealscout/internal/types"
)

// Render deterministically formats the profile into the instruction block
// prepended to every semantic request. The stated rules outrank any generic
// selection heuristic the model might apply on its own. With all lists empty
// the block is empty but still well-formed.
func Render(p *types.Profile) string {
	var sb strings.Builder

	sb.WriteString("=== User Shopping Preferences ===\n")
	sb.WriteString("These user-defined rules take priority over any generic selection criteria:\n")

	for _, rule := range p.ShoppingPrinciples {
		sb.WriteString(fmt.Sprintf("- [principle] %s\n", rule))
	}
	if len(p.BlacklistedKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("- [blacklist] Down-rank or exclude any candidate whose listing contains: %s\n",
			strings.Join(p.BlacklistedKeywords, ", ")))
	}
	if len(p.PreferredIngredients) > 0 {
		sb.WriteString(fmt.Sprintf("- [preferred] Favor products containing: %s\n",
			strings.Join(p.PreferredIngredients, ", ")))
	}
	if len(p.DislikedIngredients) > 0 {
		sb.WriteString(fmt.Sprintf("- [avoid] The user reacts badly to these ingredients; flag them prominently if detected: %s\n",
			strings.Join(p.DislikedIngredients, ", ")))
	}

	sb.WriteString("=================================\n")
	return sb.String()
}

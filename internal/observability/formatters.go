// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/weiliu/dealscout/internal/scoring"
	"github.com/weiliu/dealscout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxRankedToShow is how many ranked products the summary table lists
	maxRankedToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRanked outputs the top of the ranked collection as a summary table.
func (p *Printer) PrintRanked(products []types.Product, stats scoring.GlobalStats) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Session: %d products, mean price %.2f, mean sales %.0f\n\n",
		len(products), stats.MeanPrice, stats.MeanSales))

	count := len(products)
	if count > maxRankedToShow {
		count = maxRankedToShow
	}
	for i := 0; i < count; i++ {
		prod := products[i]
		sb.WriteString(fmt.Sprintf("%2d. [%6.2f] %s\n", i+1, prod.Score, truncate(prod.Title, 40)))
		sb.WriteString(fmt.Sprintf("      ¥%.2f | %s | %s\n", prod.Price, prod.Shop, prod.Platform))
	}
	if len(products) > maxRankedToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(products)-maxRankedToShow))
	}

	p.printBox("Ranked Products", sb.String())
}

// PrintShortlist outputs the selected shortlist with its provenance.
func (p *Printer) PrintShortlist(result *types.SelectionResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Provenance: %s\n\n", result.Provenance))
	for i, prod := range result.Products {
		sb.WriteString(fmt.Sprintf("%d. %s (¥%.2f, %s)\n", i+1, truncate(prod.Title, 44), prod.Price, prod.Shop))
	}

	p.printBox("Shortlist", sb.String())
}

// PrintProfile outputs the personalization profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	writeList := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(label + ":\n")
		for _, item := range items {
			sb.WriteString("  • " + item + "\n")
		}
	}
	writeList("Shopping principles", profile.ShoppingPrinciples)
	writeList("Blacklisted keywords", profile.BlacklistedKeywords)
	writeList("Preferred ingredients", profile.PreferredIngredients)
	writeList("Disliked ingredients", profile.DislikedIngredients)
	if sb.Len() == 0 {
		sb.WriteString("(empty)\n")
	}

	p.printBox("Personalization Profile", sb.String())
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

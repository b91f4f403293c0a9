// Package parsing converts raw, platform-specific listing records into
// canonical Products. All parsers here are tolerant: malformed numeric input
// degrades to 0 rather than returning an error.
package parsing

import (
	"strconv"
	"strings"
)

// tenThousand is the magnitude of the CJK "万" marker found in sales figures.
const tenThousand = 10000

// ParsePrice coerces a price string to a float. Currency glyphs and thousands
// separators are stripped first. Unparseable or negative input yields 0.0.
func ParsePrice(s string) float64 {
	clean := strings.NewReplacer("¥", "", "￥", "", "$", "", ",", "").Replace(s)
	clean = strings.TrimSpace(clean)

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || v < 0 {
		return 0.0
	}
	return v
}

// ParseSales coerces a sales/popularity string to a float. Unit suffixes such
// as "条评价" (reviews) and "人付款" (paid) and a trailing "+" are stripped; a
// "万" marker multiplies the numeric remainder by 10,000. Unparseable input
// yields 0.0.
func ParseSales(s string) float64 {
	clean := strings.NewReplacer("条评价", "", "人付款", "", "+", "").Replace(s)
	clean = strings.TrimSpace(clean)

	scale := 1.0
	if strings.Contains(clean, "万") {
		clean = strings.ReplaceAll(clean, "万", "")
		clean = strings.TrimSpace(clean)
		scale = tenThousand
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || v < 0 {
		return 0.0
	}
	return v * scale
}

// Package marketvalue parses display strings like "€140.00m" into
// numeric values. Parsing is lenient: bad input yields nil, never an
// error, because a missing market value must degrade, not abort.
package marketvalue

import (
	"strconv"
	"strings"
)

// Parse converts a market value display string to millions of euros.
// "€140.00m" → 140.0, "€500k" → 0.5, unparsable → nil.
func Parse(display string) *float64 {
	if display == "" {
		return nil
	}

	s := strings.ToLower(strings.TrimSpace(display))
	for _, symbol := range []string{"€", "$", "£"} {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.TrimSpace(s)

	factor := 1.0
	switch {
	case strings.HasSuffix(s, "m"):
		s = strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "k"):
		s = strings.TrimSuffix(s, "k")
		factor = 1.0 / 1000
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}

	result := value * factor
	return &result
}

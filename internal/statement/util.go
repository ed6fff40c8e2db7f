package statement

import (
	"strconv"
	"strings"
)

// parseAmount converts a captured numeric string like "1,234.56" to a
// float64. Thousands separators and currency symbols are stripped first.
// Anything unparsable comes back as 0; the grammars only capture digit
// runs, so that only happens on an empty capture.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

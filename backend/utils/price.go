package utils

import (
	"strconv"
	"strings"
)

// ParsePrice reads a free-text price such as "₹1,499" or "$19.99 / month" by
// dropping every character that is not a digit or a dot. Unparseable input
// is 0.
func ParsePrice(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
	// "1.2.3" reads as 1.2
	if first := strings.IndexByte(cleaned, '.'); first >= 0 {
		if second := strings.IndexByte(cleaned[first+1:], '.'); second >= 0 {
			cleaned = cleaned[:first+1+second]
		}
	}
	if cleaned == "" || cleaned == "." {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

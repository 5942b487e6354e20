package models

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount groups the digits of n in runs of three from the right,
// separated by commas. Display only; stored amounts stay plain integers.
func FormatAmount(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// ParseAmount strips grouping commas and dots from a display string and parses
// the remaining plain integer. Input from forms may arrive either grouped or
// plain.
func ParseAmount(s string) (int64, error) {
	cleaned := strings.NewReplacer(",", "", ".", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return n, nil
}

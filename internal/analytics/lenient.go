package analytics

import (
	"strconv"
	"strings"
)

// Lenient parsing policy for analytics query parameters: bad input never
// fails a request, it falls back to the given default. CRUD endpoints
// validate strictly; reports stay lenient.

// LenientFloat parses s, returning def when s is empty or malformed.
func LenientFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

// LenientInt parses s, returning def when s is empty or malformed.
func LenientInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// LenientBool treats "true" (any case) and "1" as true, anything else
// as false.
func LenientBool(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "true") || s == "1"
}

// LenientFloatPtr parses s into an optional bound; malformed or empty
// input yields nil (no bound).
func LenientFloatPtr(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// WidthFilter restricts flattened line items by width. Either an exact
// match or an inclusive [Min, Max] range; the zero value matches all.
type WidthFilter struct {
	Exact *float64
	Min   *float64
	Max   *float64
}

// ParseWidthFilter interprets a widthRange parameter: "min-max" becomes
// an inclusive range, a bare number an exact match. Malformed input
// yields the match-all filter.
func ParseWidthFilter(s string) WidthFilter {
	s = strings.TrimSpace(s)
	if s == "" {
		return WidthFilter{}
	}
	if strings.Contains(s, "-") {
		parts := strings.SplitN(s, "-", 2)
		minV, errMin := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		maxV, errMax := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errMin != nil || errMax != nil {
			return WidthFilter{}
		}
		return WidthFilter{Min: &minV, Max: &maxV}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return WidthFilter{}
	}
	return WidthFilter{Exact: &v}
}

// IsZero reports whether the filter matches everything.
func (f WidthFilter) IsZero() bool {
	return f.Exact == nil && f.Min == nil && f.Max == nil
}

// Matches reports whether a line-item width passes the filter. Range
// bounds are inclusive on both ends.
func (f WidthFilter) Matches(width float64) bool {
	if f.Exact != nil {
		return width == *f.Exact
	}
	if f.Min != nil && width < *f.Min {
		return false
	}
	if f.Max != nil && width > *f.Max {
		return false
	}
	return true
}

// String renders the filter back into its query-parameter form, used
// when echoing filters in responses.
func (f WidthFilter) String() string {
	switch {
	case f.Exact != nil:
		return strconv.FormatFloat(*f.Exact, 'f', -1, 64)
	case f.Min != nil && f.Max != nil:
		return strconv.FormatFloat(*f.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(*f.Max, 'f', -1, 64)
	default:
		return ""
	}
}

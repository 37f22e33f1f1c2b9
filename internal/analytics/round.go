package analytics

import "math"

// Round2 rounds to 2 decimal places. Applied at presentation time only;
// internal accumulation stays unrounded so rounding error does not
// compound across buckets.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

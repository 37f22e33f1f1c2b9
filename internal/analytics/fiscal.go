package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FiscalYearRange resolves a period token to a concrete date range over
// an April–March fiscal year. Recognized tokens:
//
//	"current"  - the fiscal year containing now
//	"previous" - one fiscal year earlier
//	"YYYY-YY"  - explicit year, end-year component as 2 or 4 digits
//	             (a 2-digit suffix means 2000+suffix)
//
// The range runs April 1 00:00:00 through March 31 23:59:59.999 UTC.
// Malformed tokens silently resolve to the current fiscal year; this
// leniency is part of the query-parameter contract, not an accident.
func FiscalYearRange(token string, now time.Time) (start, end time.Time) {
	startYear := fiscalStartYear(now)

	switch token = strings.TrimSpace(token); token {
	case "", "current":
	case "previous":
		startYear--
	default:
		if y, ok := parseExplicitYear(token); ok {
			startYear = y
		}
	}

	start = time.Date(startYear, time.April, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(startYear+1, time.March, 31, 23, 59, 59, 999000000, time.UTC)
	return start, end
}

// FiscalYearLabel renders the "YYYY-YY" label for a fiscal year start.
func FiscalYearLabel(start time.Time) string {
	return fmt.Sprintf("%d-%02d", start.Year(), (start.Year()+1)%100)
}

// fiscalStartYear returns the calendar year the current fiscal year
// started in: January–March roll back to the previous year.
func fiscalStartYear(now time.Time) int {
	if now.Month() >= time.April {
		return now.Year()
	}
	return now.Year() - 1
}

// parseExplicitYear parses a "YYYY-YY" token via its end-year component
// and returns the fiscal start year. ok is false for malformed tokens.
func parseExplicitYear(token string) (startYear int, ok bool) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return 0, false
	}
	suffix, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || suffix < 0 {
		return 0, false
	}
	endYear := suffix
	if suffix < 100 {
		endYear = 2000 + suffix
	}
	return endYear - 1, true
}

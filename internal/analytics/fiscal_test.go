package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rollstock/internal/analytics"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFiscalYearRange_Current(t *testing.T) {
	now := date(2025, time.July, 15)
	start, end := analytics.FiscalYearRange("current", now)

	assert.Equal(t, date(2025, time.April, 1), start)
	assert.Equal(t, time.Date(2026, time.March, 31, 23, 59, 59, 999000000, time.UTC), end)
}

func TestFiscalYearRange_JanuaryRollsBack(t *testing.T) {
	// January through March belong to the fiscal year that started the
	// previous April.
	now := date(2026, time.February, 10)
	start, _ := analytics.FiscalYearRange("", now)

	assert.Equal(t, date(2025, time.April, 1), start)
}

func TestFiscalYearRange_Previous(t *testing.T) {
	now := date(2025, time.July, 15)
	start, end := analytics.FiscalYearRange("previous", now)

	assert.Equal(t, date(2024, time.April, 1), start)
	assert.Equal(t, 2025, end.Year())
	assert.Equal(t, time.March, end.Month())
}

func TestFiscalYearRange_ExplicitFourDigit(t *testing.T) {
	start, end := analytics.FiscalYearRange("2023-2024", date(2025, time.July, 1))

	assert.Equal(t, date(2023, time.April, 1), start)
	assert.Equal(t, 2024, end.Year())
}

func TestFiscalYearRange_ExplicitTwoDigitSuffix(t *testing.T) {
	start, _ := analytics.FiscalYearRange("2023-24", date(2025, time.July, 1))

	assert.Equal(t, date(2023, time.April, 1), start)
}

func TestFiscalYearRange_MalformedFallsBackToCurrent(t *testing.T) {
	now := date(2025, time.July, 15)
	wantStart, wantEnd := analytics.FiscalYearRange("current", now)

	for _, token := range []string{"banana", "2023", "20xx-yy", "-"} {
		start, end := analytics.FiscalYearRange(token, now)
		assert.Equal(t, wantStart, start, "token %q", token)
		assert.Equal(t, wantEnd, end, "token %q", token)
	}
}

func TestFiscalYearLabel(t *testing.T) {
	assert.Equal(t, "2025-26", analytics.FiscalYearLabel(date(2025, time.April, 1)))
	assert.Equal(t, "2009-10", analytics.FiscalYearLabel(date(2009, time.April, 1)))
}

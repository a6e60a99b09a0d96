package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationOrUTC(t *testing.T) {
	assert.Equal(t, time.UTC, LocationOrUTC(""))
	assert.Equal(t, time.UTC, LocationOrUTC("Not/AZone"))
	assert.Equal(t, "America/Sao_Paulo", LocationOrUTC("America/Sao_Paulo").String())
}

func TestPeriodStart(t *testing.T) {
	// Thursday, March 5 2026.
	ts := time.Date(2026, 3, 5, 15, 30, 0, 0, time.UTC)

	t.Run("Day", func(t *testing.T) {
		assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), PeriodStart(ts, "DAY", time.UTC))
	})

	t.Run("WeekStartsMonday", func(t *testing.T) {
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), PeriodStart(ts, "WEEK", time.UTC))

		sunday := time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), PeriodStart(sunday, "WEEK", time.UTC))
	})

	t.Run("Month", func(t *testing.T) {
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), PeriodStart(ts, "MONTH", time.UTC))
	})

	t.Run("RespectsLocation", func(t *testing.T) {
		// 01:00 UTC on March 5 is still March 4 in New York.
		ny := LocationOrUTC("America/New_York")
		early := time.Date(2026, 3, 5, 1, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, ny), PeriodStart(early, "DAY", ny))
	})
}

func TestPeriodKey(t *testing.T) {
	ts := time.Date(2026, 3, 5, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-05", PeriodKey(ts, "DAY", time.UTC))
	assert.Equal(t, "2026-W10", PeriodKey(ts, "WEEK", time.UTC))
	assert.Equal(t, "2026-03", PeriodKey(ts, "MONTH", time.UTC))

	ny := LocationOrUTC("America/New_York")
	early := time.Date(2026, 3, 5, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-04", PeriodKey(early, "DAY", ny))
}

func TestAddPeriods(t *testing.T) {
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), AddPeriods(start, "DAY", 2))
	assert.Equal(t, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC), AddPeriods(start, "WEEK", 1))
	assert.Equal(t, time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC), AddPeriods(start, "DAY", -2))
}

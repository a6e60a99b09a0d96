package goal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeProgress(t *testing.T) {
	daily := &Goal{Pattern: PatternRecurring, TargetValue: 1, TargetPeriod: PeriodDay}

	t.Run("NoActivities", func(t *testing.T) {
		snap := ComputeProgress(daily, nil, WindowAll, time.Now())
		assert.Equal(t, 0.0, snap.PercentComplete)
		assert.Equal(t, TrendStable, snap.Trend)
		assert.Equal(t, Distribution{}, snap.Distribution)
	})

	t.Run("RecurringCountsCurrentPeriod", func(t *testing.T) {
		acts := []Activity{
			dayActivity(2026, 3, 1, 9, 1, "UTC"),
			dayActivity(2026, 3, 2, 9, 1, "UTC"),
		}
		now := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)

		snap := ComputeProgress(daily, acts, WindowAll, now)
		// Two of three days satisfied; today is still open but counts
		// toward the denominator so the percentage cannot regress later.
		assert.Equal(t, 66.7, snap.PercentComplete)
		assert.Equal(t, Distribution{Completed: 2}, snap.Distribution)
		assert.Equal(t, 1.0, snap.Consistency)
	})

	t.Run("RecurringFullWindow", func(t *testing.T) {
		acts := []Activity{
			dayActivity(2026, 3, 1, 9, 1, "UTC"),
			dayActivity(2026, 3, 2, 9, 1, "UTC"),
			dayActivity(2026, 3, 3, 9, 1, "UTC"),
		}
		now := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)

		snap := ComputeProgress(daily, acts, WindowAll, now)
		assert.Equal(t, 100.0, snap.PercentComplete)
	})

	t.Run("RecurringPartialAndMissed", func(t *testing.T) {
		g := &Goal{Pattern: PatternRecurring, TargetValue: 2, TargetPeriod: PeriodDay}
		acts := []Activity{
			dayActivity(2026, 3, 1, 9, 1, "UTC"),
			dayActivity(2026, 3, 3, 9, 1, "UTC"),
			dayActivity(2026, 3, 3, 15, 1, "UTC"),
		}
		now := time.Date(2026, 3, 3, 18, 0, 0, 0, time.UTC)

		snap := ComputeProgress(g, acts, WindowAll, now)
		assert.Equal(t, 33.3, snap.PercentComplete)
		assert.Equal(t, Distribution{Completed: 1, Partial: 1, Missed: 1}, snap.Distribution)
		assert.Equal(t, 0.0, snap.Consistency)
	})

	t.Run("MilestoneCapsAtHundred", func(t *testing.T) {
		g := &Goal{Pattern: PatternMilestone, TargetValue: 50000}
		acts := []Activity{
			dayActivity(2026, 2, 20, 9, 31000, "UTC"),
			dayActivity(2026, 3, 4, 9, 31000, "UTC"),
		}
		now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

		snap := ComputeProgress(g, acts, WindowAll, now)
		assert.Equal(t, 100.0, snap.PercentComplete)
	})

	t.Run("MilestoneTrendAcrossWindows", func(t *testing.T) {
		g := &Goal{Pattern: PatternMilestone, TargetValue: 50000}
		acts := []Activity{
			dayActivity(2026, 2, 20, 9, 20000, "UTC"),
			dayActivity(2026, 3, 4, 9, 11000, "UTC"),
		}
		// Thursday; the week window opens Monday March 2.
		now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

		snap := ComputeProgress(g, acts, WindowWeek, now)
		assert.Equal(t, 62.0, snap.PercentComplete)
		assert.Equal(t, TrendUp, snap.Trend)
		assert.Equal(t, 22.0, snap.TrendDelta)
		// Milestone periods are never missed.
		assert.Equal(t, Distribution{Partial: 1}, snap.Distribution)
	})

	t.Run("TargetDistanceClosed", func(t *testing.T) {
		g := &Goal{Pattern: PatternTarget, TargetValue: 70, TargetDirection: DirectionDecrease, TargetType: TargetMaximum}
		acts := []Activity{
			dayActivity(2026, 3, 1, 9, 80, "UTC"),
			dayActivity(2026, 3, 2, 9, 75, "UTC"),
		}
		now := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)

		snap := ComputeProgress(g, acts, WindowAll, now)
		assert.Equal(t, 50.0, snap.PercentComplete)
	})

	t.Run("TargetMovingAwayClampsToZero", func(t *testing.T) {
		g := &Goal{Pattern: PatternTarget, TargetValue: 70, TargetDirection: DirectionDecrease, TargetType: TargetMaximum}
		acts := []Activity{
			dayActivity(2026, 3, 1, 9, 80, "UTC"),
			dayActivity(2026, 3, 2, 9, 85, "UTC"),
		}
		now := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)

		snap := ComputeProgress(g, acts, WindowAll, now)
		assert.Equal(t, 0.0, snap.PercentComplete)
	})

	t.Run("LimitExceededDayIsMissed", func(t *testing.T) {
		g := &Goal{Pattern: PatternLimit, TargetValue: 2, TargetPeriod: PeriodDay}
		acts := []Activity{
			dayActivity(2026, 3, 1, 9, 1, "UTC"),
			dayActivity(2026, 3, 2, 9, 1, "UTC"),
			dayActivity(2026, 3, 2, 12, 1, "UTC"),
			dayActivity(2026, 3, 2, 15, 1, "UTC"),
		}
		now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

		snap := ComputeProgress(g, acts, WindowAll, now)
		// March 1 within limit, March 2 exceeded, March 3 and 4 untouched
		// (an empty day satisfies a limit).
		assert.Equal(t, 75.0, snap.PercentComplete)
		assert.Equal(t, Distribution{Completed: 3, Missed: 1}, snap.Distribution)
	})
}

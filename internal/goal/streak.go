package goal

import (
	"time"

	util "github.com/momentumapp/momentum-lambda/internal/utils"
)

type StreakResult struct {
	Current        int        `json:"current"`
	Longest        int        `json:"longest"`
	LapsesAt       *time.Time `json:"lapses_at,omitempty"`
	LastQualifying *time.Time `json:"last_qualifying,omitempty"`
}

// cadence returns the goal's period granularity, defaulting to daily for
// goals whose target spec carries no period.
func cadence(g *Goal) string {
	if g.TargetPeriod.IsValid() {
		return string(g.TargetPeriod)
	}
	return string(PeriodDay)
}

// ComputeStreak derives current streak, longest streak and the instant the
// current streak lapses if nothing further is logged. Activities bucket
// into cadence periods using the timezone each one was logged in; the walk
// itself is anchored in the most recent activity's timezone.
//
// Only elapsed periods are required to be satisfied. The current,
// incomplete period is provisional: it extends the streak once satisfied
// but never breaks it. Limit goals are the exception, since exceeding the
// limit mid-period is already irreversible.
func ComputeStreak(g *Goal, activities []Activity, now time.Time) StreakResult {
	if len(activities) == 0 {
		return StreakResult{}
	}

	period := cadence(g)

	buckets := make(map[string][]Activity)
	latest, earliest := activities[0], activities[0]
	for _, a := range activities {
		loc := util.LocationOrUTC(a.Timezone)
		k := util.PeriodKey(a.OccurredAt, period, loc)
		buckets[k] = append(buckets[k], a)

		if a.OccurredAt.After(latest.OccurredAt) {
			latest = a
		}
		if a.OccurredAt.Before(earliest.OccurredAt) {
			earliest = a
		}
	}

	loc := util.LocationOrUTC(latest.Timezone)
	satisfied := func(periodStart time.Time) bool {
		return IsPeriodSatisfied(g, buckets[util.PeriodKey(periodStart, period, loc)])
	}
	hasActivity := func(periodStart time.Time) bool {
		return len(buckets[util.PeriodKey(periodStart, period, loc)]) > 0
	}

	currentStart := util.PeriodStart(now, period, loc)
	earliestStart := util.PeriodStart(earliest.OccurredAt, period, loc)

	current := 0
	var lastSatisfiedStart time.Time
	brokenNow := false

	if satisfied(currentStart) {
		current++
		lastSatisfiedStart = currentStart
	} else if g.Pattern == PatternLimit && hasActivity(currentStart) {
		brokenNow = true
	}

	if !brokenNow {
		for cursor := util.AddPeriods(currentStart, period, -1); !cursor.Before(earliestStart); cursor = util.AddPeriods(cursor, period, -1) {
			if !satisfied(cursor) {
				break
			}
			current++
			if lastSatisfiedStart.IsZero() {
				lastSatisfiedStart = cursor
			}
		}
	} else {
		current = 0
	}

	longest, run := 0, 0
	for cursor := earliestStart; !cursor.After(currentStart); cursor = util.AddPeriods(cursor, period, 1) {
		if satisfied(cursor) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	result := StreakResult{Current: current, Longest: longest}
	if current > 0 {
		// The streak dies the moment the period after the last satisfied
		// one elapses without being satisfied itself.
		lapse := util.AddPeriods(lastSatisfiedStart, period, 2)
		result.LapsesAt = &lapse
	}
	lastQualifying := latest.OccurredAt
	result.LastQualifying = &lastQualifying
	return result
}

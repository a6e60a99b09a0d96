package goal

import (
	"math"
	"time"

	util "github.com/momentumapp/momentum-lambda/internal/utils"
)

const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

type Distribution struct {
	Completed int `json:"completed"`
	Partial   int `json:"partial"`
	Missed    int `json:"missed"`
}

// ProgressSnapshot is derived on every read; it is never persisted.
type ProgressSnapshot struct {
	PercentComplete float64      `json:"percent_complete"`
	Trend           string       `json:"trend"`
	TrendDelta      float64      `json:"trend_delta"`
	Distribution    Distribution `json:"distribution"`
	Consistency     float64      `json:"consistency"`
}

// ComputeProgress rolls activities up over the requested window. It never
// fails: a goal with nothing logged yields an all-zero snapshot with a
// stable trend.
func ComputeProgress(g *Goal, activities []Activity, window ProgressWindow, now time.Time) ProgressSnapshot {
	snapshot := ProgressSnapshot{Trend: TrendStable}
	if len(activities) == 0 {
		return snapshot
	}

	latest, earliest := activities[0], activities[0]
	for _, a := range activities {
		if a.OccurredAt.After(latest.OccurredAt) {
			latest = a
		}
		if a.OccurredAt.Before(earliest.OccurredAt) {
			earliest = a
		}
	}
	loc := util.LocationOrUTC(latest.Timezone)
	period := cadence(g)

	windowStart, prevStart, hasPrev := windowBounds(window, now, earliest.OccurredAt, period, loc)

	switch g.Pattern {
	case PatternMilestone:
		snapshot.PercentComplete = milestonePercent(g, activities, now)
		if hasPrev {
			prev := milestonePercent(g, activities, windowStart)
			snapshot.Trend, snapshot.TrendDelta = trend(snapshot.PercentComplete, prev)
		}
	case PatternTarget:
		snapshot.PercentComplete = targetPercent(g, activities, now)
		if hasPrev {
			prev := targetPercent(g, activities, windowStart)
			snapshot.Trend, snapshot.TrendDelta = trend(snapshot.PercentComplete, prev)
		}
	default:
		cur := periodStats(g, activities, windowStart, now, period, loc)
		snapshot.PercentComplete = cur.percent()
		if hasPrev {
			prevEnd := windowStart.Add(-time.Nanosecond)
			prev := periodStats(g, activities, prevStart, prevEnd, period, loc)
			snapshot.Trend, snapshot.TrendDelta = trend(snapshot.PercentComplete, prev.percent())
		}
	}

	full := periodStats(g, activities, windowStart, now, period, loc)
	snapshot.Distribution = full.distribution()
	snapshot.Consistency = full.consistency()

	if g.Pattern == PatternMilestone {
		snapshot.Distribution = milestoneDistribution(g, activities, full)
	}

	return snapshot
}

// windowBounds resolves the requested window to [start, now] plus the
// start of the immediately prior window of equal length.
func windowBounds(window ProgressWindow, now, earliest time.Time, period string, loc *time.Location) (start, prevStart time.Time, hasPrev bool) {
	t := now.In(loc)
	switch window {
	case WindowToday:
		start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, -1), true
	case WindowWeek:
		start = util.PeriodStart(t, "WEEK", loc)
		return start, start.AddDate(0, 0, -7), true
	case WindowMonth:
		start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, -1, 0), true
	case WindowQuarter:
		month := time.Month(((int(t.Month())-1)/3)*3 + 1)
		start = time.Date(t.Year(), month, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, -3, 0), true
	case WindowYear:
		start = time.Date(t.Year(), 1, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(-1, 0, 0), true
	default: // ALL
		start = util.PeriodStart(earliest, period, loc)
		return start, time.Time{}, false
	}
}

// windowPeriods aggregates satisfaction per cadence period inside a range.
type windowPeriods struct {
	total        int
	satisfied    int
	completed    int
	partial      int
	missed       int
	elapsed      int
	elapsedSat   int
	withActivity int
}

// periodStats enumerates the cadence periods whose start falls in
// [from, to] and classifies each one. The current, incomplete period counts
// toward the total (it flips to satisfied the moment its activities meet
// the condition) but is excluded from the elapsed counts.
func periodStats(g *Goal, activities []Activity, from, to time.Time, period string, loc *time.Location) windowPeriods {
	buckets := make(map[string][]Activity)
	for _, a := range activities {
		aloc := util.LocationOrUTC(a.Timezone)
		k := util.PeriodKey(a.OccurredAt, period, aloc)
		buckets[k] = append(buckets[k], a)
	}

	currentStart := util.PeriodStart(to, period, loc)

	p := util.PeriodStart(from, period, loc)
	if p.Before(from) {
		p = util.AddPeriods(p, period, 1)
	}

	var stats windowPeriods
	for ; !p.After(to) && !p.After(currentStart); p = util.AddPeriods(p, period, 1) {
		acts := buckets[util.PeriodKey(p, period, loc)]
		sat := IsPeriodSatisfied(g, acts)
		elapsed := p.Before(currentStart)

		stats.total++
		if sat {
			stats.satisfied++
			stats.completed++
		} else if len(acts) > 0 {
			if g.Pattern == PatternLimit {
				stats.missed++ // limit exceeded: a broken period
			} else {
				stats.partial++
			}
		} else if elapsed {
			stats.missed++
		}

		if len(acts) > 0 {
			stats.withActivity++
		}
		if elapsed {
			stats.elapsed++
			if sat {
				stats.elapsedSat++
			}
		}
	}
	return stats
}

func (w windowPeriods) percent() float64 {
	if w.total == 0 {
		return 0
	}
	return round1(float64(w.satisfied) / float64(w.total) * 100)
}

func (w windowPeriods) consistency() float64 {
	if w.elapsed == 0 {
		return 0
	}
	return float64(w.elapsedSat) / float64(w.elapsed)
}

func (w windowPeriods) distribution() Distribution {
	return Distribution{Completed: w.completed, Partial: w.partial, Missed: w.missed}
}

// milestonePercent is cumulative progress over the whole history up to the
// cutoff, capped at 100.
func milestonePercent(g *Goal, activities []Activity, until time.Time) float64 {
	var cum float64
	for _, a := range activities {
		if a.OccurredAt.Before(until) || a.OccurredAt.Equal(until) {
			cum += a.Value
		}
	}
	if g.TargetValue <= 0 {
		return 0
	}
	pct := cum / g.TargetValue * 100
	if pct > 100 {
		pct = 100
	}
	return round1(pct)
}

// milestoneDistribution: milestone periods are never missed. Periods that
// logged an increment count as completed once the cumulative target is
// reached, partial before that.
func milestoneDistribution(g *Goal, activities []Activity, stats windowPeriods) Distribution {
	if CumulativeComplete(g, activities) {
		return Distribution{Completed: stats.withActivity}
	}
	return Distribution{Partial: stats.withActivity}
}

// targetPercent is distance closed over initial distance: how much of the
// gap between the first observation and the target has been covered by the
// best observation so far.
func targetPercent(g *Goal, activities []Activity, until time.Time) float64 {
	var observed []Activity
	for _, a := range activities {
		if a.OccurredAt.Before(until) || a.OccurredAt.Equal(until) {
			observed = append(observed, a)
		}
	}
	if len(observed) == 0 {
		return 0
	}

	first := observed[0]
	for _, a := range observed {
		if a.OccurredAt.Before(first.OccurredAt) {
			first = a
		}
	}
	initial := first.Value
	best := bestValue(g, observed)

	denom := g.TargetValue - initial
	if denom == 0 {
		if bestValueSatisfies(g, observed) {
			return 100
		}
		return 0
	}

	pct := (best - initial) / denom * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return round1(pct)
}

func trend(cur, prev float64) (string, float64) {
	delta := round1(cur - prev)
	switch {
	case delta > 0:
		return TrendUp, delta
	case delta < 0:
		return TrendDown, delta
	default:
		return TrendStable, 0
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

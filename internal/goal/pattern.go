package goal

// Pattern strategy: pure functions interpreting a goal's target
// specification for each of the five patterns. Nothing here touches
// storage or the clock.

// ValidateTargetSpec checks that a target specification carries the fields
// its pattern needs. Returns nil when well-formed.
func ValidateTargetSpec(pattern GoalPattern, spec TargetSpecDTO) *ValidationError {
	if !pattern.IsValid() {
		return validationErr("pattern", "must be one of RECURRING, MILESTONE, TARGET, STREAK, LIMIT")
	}

	switch pattern {
	case PatternRecurring, PatternStreak:
		if spec.Value <= 0 {
			return validationErr("target.value", "must be greater than zero")
		}
		if !spec.Period.IsValid() {
			return validationErr("target.period", "must be one of DAY, WEEK, MONTH")
		}
	case PatternLimit:
		if spec.Value < 0 {
			return validationErr("target.value", "must not be negative")
		}
		if !spec.Period.IsValid() {
			return validationErr("target.period", "must be one of DAY, WEEK, MONTH")
		}
	case PatternMilestone:
		if spec.Value <= 0 {
			return validationErr("target.value", "must be greater than zero")
		}
	case PatternTarget:
		if !spec.Direction.IsValid() {
			return validationErr("target.direction", "must be INCREASE or DECREASE")
		}
		if !spec.Type.IsValid() {
			return validationErr("target.type", "must be MINIMUM, MAXIMUM or EXACT")
		}
	}
	return nil
}

// ValidateActivity checks a proposed activity payload against the goal's
// pattern. This is the only error the pattern strategy can raise.
func ValidateActivity(g *Goal, dto LogActivityDTO) *ValidationError {
	if dto.Value == nil {
		return validationErr("value", "is required")
	}
	value := *dto.Value

	switch g.Pattern {
	case PatternRecurring, PatternStreak:
		if value <= 0 {
			return validationErr("value", "must be greater than zero")
		}
	case PatternLimit:
		if value < 0 {
			return validationErr("value", "must not be negative")
		}
	case PatternMilestone:
		// Corrections (negative deltas) are not supported: activities are
		// append-only and the cumulative total must stay monotonic.
		if value <= 0 {
			return validationErr("value", "must be a positive increment")
		}
	case PatternTarget:
		// Any observed numeric value is acceptable for a target goal.
	default:
		return validationErr("pattern", "unknown goal pattern")
	}
	return nil
}

// IsPeriodSatisfied reports whether one cadence period's activities meet
// the pattern's success condition. An empty slice is a period with no
// qualifying activity.
func IsPeriodSatisfied(g *Goal, activities []Activity) bool {
	switch g.Pattern {
	case PatternRecurring, PatternStreak:
		return sumValues(activities) >= g.TargetValue
	case PatternLimit:
		// Inverted: the period holds as long as consumption stays at or
		// below the limit, including a period with nothing logged.
		return sumValues(activities) <= g.TargetValue
	case PatternMilestone:
		// Milestone periods are never missed, only in progress; a period
		// with any logged increment counts as progress.
		return sumValues(activities) > 0
	case PatternTarget:
		return bestValueSatisfies(g, activities)
	}
	return false
}

// CumulativeComplete reports whether a milestone goal's whole history has
// reached its target.
func CumulativeComplete(g *Goal, activities []Activity) bool {
	return g.Pattern == PatternMilestone && sumValues(activities) >= g.TargetValue
}

func sumValues(activities []Activity) float64 {
	var sum float64
	for _, a := range activities {
		sum += a.Value
	}
	return sum
}

// bestValueSatisfies checks whether the best value observed in the slice
// is on the correct side of the target, accounting for direction.
func bestValueSatisfies(g *Goal, activities []Activity) bool {
	if len(activities) == 0 {
		return false
	}
	best := bestValue(g, activities)

	switch g.TargetType {
	case TargetExact:
		return best == g.TargetValue
	default:
		if g.TargetDirection == DirectionDecrease {
			return best <= g.TargetValue
		}
		return best >= g.TargetValue
	}
}

// bestValue picks the most favorable observation for the goal's direction:
// the minimum when decreasing, the maximum when increasing.
func bestValue(g *Goal, activities []Activity) float64 {
	best := activities[0].Value
	for _, a := range activities[1:] {
		if g.TargetDirection == DirectionDecrease {
			if a.Value < best {
				best = a.Value
			}
		} else {
			if a.Value > best {
				best = a.Value
			}
		}
	}
	return best
}

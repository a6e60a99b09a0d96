package goal

type GoalPattern string

const (
	PatternRecurring GoalPattern = "RECURRING"
	PatternMilestone GoalPattern = "MILESTONE"
	PatternTarget    GoalPattern = "TARGET"
	PatternStreak    GoalPattern = "STREAK"
	PatternLimit     GoalPattern = "LIMIT"
)

var AllPatterns = []GoalPattern{
	PatternRecurring,
	PatternMilestone,
	PatternTarget,
	PatternStreak,
	PatternLimit,
}

func (p GoalPattern) IsValid() bool {
	for _, v := range AllPatterns {
		if p == v {
			return true
		}
	}
	return false
}

// PeriodBased reports whether satisfaction is evaluated per cadence period.
func (p GoalPattern) PeriodBased() bool {
	return p == PatternRecurring || p == PatternStreak || p == PatternLimit
}

type GoalStatus string

const (
	StatusActive    GoalStatus = "ACTIVE"
	StatusCompleted GoalStatus = "COMPLETED"
	StatusPaused    GoalStatus = "PAUSED"
	StatusArchived  GoalStatus = "ARCHIVED"
)

var AllStatuses = []GoalStatus{
	StatusActive,
	StatusCompleted,
	StatusPaused,
	StatusArchived,
}

func (s GoalStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// statusTransitions is the total transition table. Completed and archived
// are terminal.
var statusTransitions = map[GoalStatus][]GoalStatus{
	StatusActive: {StatusCompleted, StatusPaused, StatusArchived},
	StatusPaused: {StatusActive, StatusArchived},
}

func (s GoalStatus) CanTransitionTo(next GoalStatus) bool {
	for _, v := range statusTransitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

type Period string

const (
	PeriodDay   Period = "DAY"
	PeriodWeek  Period = "WEEK"
	PeriodMonth Period = "MONTH"
)

func (p Period) IsValid() bool {
	return p == PeriodDay || p == PeriodWeek || p == PeriodMonth
}

type TargetDirection string

const (
	DirectionIncrease TargetDirection = "INCREASE"
	DirectionDecrease TargetDirection = "DECREASE"
)

func (d TargetDirection) IsValid() bool {
	return d == DirectionIncrease || d == DirectionDecrease
}

type TargetType string

const (
	TargetMinimum TargetType = "MINIMUM"
	TargetMaximum TargetType = "MAXIMUM"
	TargetExact   TargetType = "EXACT"
)

func (t TargetType) IsValid() bool {
	return t == TargetMinimum || t == TargetMaximum || t == TargetExact
}

type GoalVisibility string

const (
	VisibilityPrivate GoalVisibility = "PRIVATE"
	VisibilityShared  GoalVisibility = "SHARED"
)

// ProgressWindow is the range a progress snapshot is computed over.
type ProgressWindow string

const (
	WindowToday   ProgressWindow = "TODAY"
	WindowWeek    ProgressWindow = "WEEK"
	WindowMonth   ProgressWindow = "MONTH"
	WindowQuarter ProgressWindow = "QUARTER"
	WindowYear    ProgressWindow = "YEAR"
	WindowAll     ProgressWindow = "ALL"
)

func (w ProgressWindow) IsValid() bool {
	switch w {
	case WindowToday, WindowWeek, WindowMonth, WindowQuarter, WindowYear, WindowAll:
		return true
	}
	return false
}

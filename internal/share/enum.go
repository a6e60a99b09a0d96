package share

import "time"

type ItemType string

const (
	ItemJournalEntry ItemType = "JOURNAL_ENTRY"
	ItemGoal         ItemType = "GOAL"
)

func (t ItemType) IsValid() bool {
	return t == ItemJournalEntry || t == ItemGoal
}

// ShareState is an evaluation-time classification, not a stored column:
// revoked and expired are terminal.
type ShareState string

const (
	StateActive  ShareState = "ACTIVE"
	StateRevoked ShareState = "REVOKED"
	StateExpired ShareState = "EXPIRED"
)

const (
	// DefaultGrantCeiling caps ordinary recipient grants.
	DefaultGrantCeiling = 24 * time.Hour
	// AIGrantCeiling is the stricter cap on AI-analysis grants.
	AIGrantCeiling = 60 * time.Minute
	// AIMaxItems caps how many items one AI-analysis request may reference.
	AIMaxItems = 10
)

package goal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TargetSpecDTO struct {
	Metric    string          `json:"metric"`
	Value     float64         `json:"value"`
	Unit      string          `json:"unit"`
	Period    Period          `json:"period"`
	Direction TargetDirection `json:"direction"`
	Type      TargetType      `json:"type"`
}

type CreateGoalDTO struct {
	Title            string         `json:"title"`
	Category         string         `json:"category"`
	Pattern          GoalPattern    `json:"pattern"`
	Target           TargetSpecDTO  `json:"target"`
	Frequency        string         `json:"frequency"`
	CheckInFrequency string         `json:"check_in_frequency"`
	Visibility       GoalVisibility `json:"visibility"`
}

// UpdateGoalDTO carries no pattern or target fields on purpose: the
// pattern is immutable after creation.
type UpdateGoalDTO struct {
	Title            *string         `json:"title"`
	Category         *string         `json:"category"`
	Frequency        *string         `json:"frequency"`
	CheckInFrequency *string         `json:"check_in_frequency"`
	Visibility       *GoalVisibility `json:"visibility"`
	Status           *GoalStatus     `json:"status"`
}

type LogActivityDTO struct {
	ID         *uuid.UUID     `json:"id"` // client-supplied for idempotent retries
	Value      *float64       `json:"value"`
	Note       string         `json:"note"`
	OccurredAt *time.Time     `json:"occurred_at"`
	Timezone   string         `json:"timezone"`
	Metadata   datatypes.JSON `json:"metadata"`
}

type GoalResponse struct {
	ID               uuid.UUID      `json:"id"`
	UserID           uuid.UUID      `json:"user_id"`
	Title            string         `json:"title"`
	Category         string         `json:"category,omitempty"`
	Pattern          GoalPattern    `json:"pattern"`
	Target           TargetSpecDTO  `json:"target"`
	Frequency        string         `json:"frequency,omitempty"`
	CheckInFrequency string         `json:"check_in_frequency,omitempty"`
	Status           GoalStatus     `json:"status"`
	Visibility       GoalVisibility `json:"visibility"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type GoalCountStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Paused    int `json:"paused"`
	Archived  int `json:"archived"`
}

type PatternStats struct {
	Recurring int `json:"recurring"`
	Milestone int `json:"milestone"`
	Target    int `json:"target"`
	Streak    int `json:"streak"`
	Limit     int `json:"limit"`
}

type DashboardResponse struct {
	Stats            GoalCountStats `json:"stats"`
	Patterns         PatternStats   `json:"patterns"`
	RecentActivities []Activity     `json:"recent_activities"`
}

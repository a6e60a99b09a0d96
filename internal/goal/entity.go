package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/momentumapp/momentum-lambda/internal/user"
	"gorm.io/datatypes"
)

type Goal struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User     user.User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Title    string     `gorm:"type:text;not null" json:"title"`
	Category string     `gorm:"type:text" json:"category,omitempty"`
	Pattern  GoalPattern `gorm:"type:text;not null" json:"pattern"`

	// Target specification. Which fields apply depends on the pattern:
	// recurring/streak need value+period, limit needs value+period,
	// milestone needs value only, target needs value+direction+type.
	TargetMetric    string          `gorm:"type:text" json:"target_metric,omitempty"`
	TargetValue     float64         `gorm:"not null" json:"target_value"`
	TargetUnit      string          `gorm:"type:text" json:"target_unit,omitempty"`
	TargetPeriod    Period          `gorm:"type:text" json:"target_period,omitempty"`
	TargetDirection TargetDirection `gorm:"type:text" json:"target_direction,omitempty"`
	TargetType      TargetType      `gorm:"type:text" json:"target_type,omitempty"`

	Frequency        string `gorm:"type:text" json:"frequency,omitempty"`
	CheckInFrequency string `gorm:"type:text" json:"check_in_frequency,omitempty"`

	Status     GoalStatus     `gorm:"type:text;not null;index" json:"status"`
	Visibility GoalVisibility `gorm:"type:text;not null;default:PRIVATE" json:"visibility"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Activity is an append-only log entry. Activities are never mutated or
// deleted; every derived statistic is recomputed from them.
type Activity struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GoalID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"goal_id"`
	Goal       Goal           `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE;" json:"-"`
	Value      float64        `gorm:"not null" json:"value"`
	Note       string         `gorm:"type:text" json:"note,omitempty"`
	OccurredAt time.Time      `gorm:"not null;index" json:"occurred_at"`
	Timezone   string         `gorm:"type:text;not null;default:UTC" json:"timezone"`
	Metadata   datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

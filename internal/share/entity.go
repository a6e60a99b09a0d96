package share

import (
	"time"

	"github.com/google/uuid"
	"github.com/momentumapp/momentum-lambda/internal/user"
	"gorm.io/datatypes"
)

// Share is a time-boxed, revocable access grant over one item. Shares are
// never hard-deleted; revoked and expired rows stay for audit.
type Share struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ItemType ItemType  `gorm:"type:text;not null" json:"item_type"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`

	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   user.User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;" json:"-"`

	// RecipientID is nil for AI-analysis grants.
	RecipientID *uuid.UUID `gorm:"type:uuid;index" json:"recipient_id,omitempty"`

	// WrappedKey is the item's content key sealed to the recipient's
	// public key. The plaintext key is never stored.
	WrappedKey  string         `gorm:"type:text;not null" json:"wrapped_key"`
	Permissions datatypes.JSON `gorm:"type:jsonb" json:"permissions,omitempty"`

	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	ExpiresAt   time.Time `gorm:"not null;index" json:"expires_at"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	AccessCount int       `gorm:"not null;default:0" json:"access_count"`
}

func (s *Share) IsAIGrant() bool {
	return s.RecipientID == nil
}

// State classifies the share at evaluation time. Expiry always wins over
// the stored active flag; an expired share must be treated as absent
// everywhere it is read.
func (s *Share) State(now time.Time) ShareState {
	if now.After(s.ExpiresAt) {
		return StateExpired
	}
	if !s.Active {
		return StateRevoked
	}
	return StateActive
}

func (s *Share) Usable(now time.Time) bool {
	return s.State(now) == StateActive
}

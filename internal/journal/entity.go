package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/momentumapp/momentum-lambda/internal/user"
)

// Entry content is encrypted client-side; the server stores only the
// ciphertext and a content key wrapped for the owner. The plaintext key
// never reaches the backend.
type Entry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`

	Title             string `gorm:"type:text" json:"title,omitempty"`
	Ciphertext        string `gorm:"type:text;not null" json:"ciphertext"`
	WrappedContentKey string `gorm:"type:text;not null" json:"wrapped_content_key"`
	Mood              string `gorm:"type:text" json:"mood,omitempty"`

	Archived  bool      `gorm:"not null;default:false" json:"archived"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

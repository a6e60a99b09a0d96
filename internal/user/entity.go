package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	GoogleID  string    `gorm:"type:text;uniqueIndex" json:"-"`
	AvatarURL string    `gorm:"type:text" json:"avatar_url,omitempty"`
	Role      string    `gorm:"type:text;not null;default:user" json:"role"`

	// RefreshToken is stored AES-GCM encrypted, never in the clear.
	RefreshToken string `gorm:"type:text" json:"-"`

	// PublicKey is the user's registered X25519 public key (base64).
	// Empty until the client uploads key material; sharing to this user is
	// refused until then.
	PublicKey string `gorm:"type:text" json:"public_key,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// EncryptionReady reports whether shares can be wrapped for this user.
func (u *User) EncryptionReady() bool {
	return u.PublicKey != ""
}

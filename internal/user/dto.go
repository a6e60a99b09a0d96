package user

import (
	"time"

	"github.com/google/uuid"
)

type GoogleLoginDTO struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

type RegisterPublicKeyDTO struct {
	PublicKey string `json:"public_key"`
}

type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	Role            string    `json:"role"`
	EncryptionReady bool      `json:"encryption_ready"`
	CreatedAt       time.Time `json:"created_at"`
}

type googleUserInfo struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

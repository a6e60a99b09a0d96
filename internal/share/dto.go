package share

import "github.com/google/uuid"

type CreateShareDTO struct {
	ItemType ItemType    `json:"item_type"`
	ItemIDs  []uuid.UUID `json:"item_ids"`

	// RecipientID is omitted for AI-analysis grants.
	RecipientID *uuid.UUID `json:"recipient_id"`

	// ContentKey is the plaintext content key, base64, supplied by the
	// owner's client after unwrapping its own copy. It is wrapped for the
	// recipient and discarded; only the wrapped form is stored.
	ContentKey string `json:"content_key"`

	Permissions     []string `json:"permissions"`
	DurationMinutes int      `json:"duration_minutes"`
}

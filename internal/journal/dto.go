package journal

type CreateEntryDTO struct {
	Title             string `json:"title"`
	Ciphertext        string `json:"ciphertext"`
	WrappedContentKey string `json:"wrapped_content_key"`
	Mood              string `json:"mood"`
}

type UpdateEntryDTO struct {
	Title      *string `json:"title"`
	Ciphertext *string `json:"ciphertext"`
	Mood       *string `json:"mood"`
}

package share

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrShareNotFound      = errors.New("share not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrRecipientNotReady  = errors.New("recipient has no encryption key material registered")
	ErrTooManyItems       = errors.New("AI analysis shares may reference at most 10 items")
	ErrInvalidID          = errors.New("invalid id format")
	ErrInvalidItemType    = errors.New("item_type must be JOURNAL_ENTRY or GOAL")
	ErrMissingContentKey  = errors.New("content_key is required")
	ErrPreconditionFailed = errors.New("precondition failed")
)

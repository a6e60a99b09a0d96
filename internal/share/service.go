package share

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/momentumapp/momentum-lambda/internal/auth"
	"github.com/momentumapp/momentum-lambda/internal/config"
	"github.com/momentumapp/momentum-lambda/internal/goal"
	"github.com/momentumapp/momentum-lambda/internal/journal"
	"github.com/momentumapp/momentum-lambda/internal/user"
	"github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, dto CreateShareDTO) ([]Share, error)
	List(ctx context.Context) ([]Share, error)
	Revoke(ctx context.Context, id string) error
	Access(ctx context.Context, id string) (*Share, error)
}

type service struct {
	repo        Repository
	userRepo    user.UserRepository
	goalRepo    goal.Repository
	journalRepo journal.Repository
	now         func() time.Time
}

func NewService(repo Repository, userRepo user.UserRepository, goalRepo goal.Repository, journalRepo journal.Repository) Service {
	return &service{
		repo:        repo,
		userRepo:    userRepo,
		goalRepo:    goalRepo,
		journalRepo: journalRepo,
		now:         time.Now,
	}
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

func (s *service) Create(ctx context.Context, dto CreateShareDTO) ([]Share, error) {
	log := config.WithContext(ctx)
	owner, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if !dto.ItemType.IsValid() {
		return nil, ErrInvalidItemType
	}
	if len(dto.ItemIDs) == 0 {
		return nil, ErrItemNotFound
	}
	if dto.ContentKey == "" {
		return nil, ErrMissingContentKey
	}
	contentKey, err := base64.StdEncoding.DecodeString(dto.ContentKey)
	if err != nil {
		return nil, ErrMissingContentKey
	}

	isAI := dto.RecipientID == nil
	if isAI && len(dto.ItemIDs) > AIMaxItems {
		return nil, ErrTooManyItems
	}

	recipientKey, err := s.recipientPublicKey(dto.RecipientID)
	if err != nil {
		return nil, err
	}

	// Only the owner's items can be shared; an item that exists under
	// someone else is reported as absent.
	for _, itemID := range dto.ItemIDs {
		if err := s.checkOwnership(dto.ItemType, itemID, owner); err != nil {
			return nil, err
		}
	}

	wrapped, err := config.WrapKey(contentKey, recipientKey)
	if err != nil {
		log.WithError(err).Error("Failed to wrap content key")
		return nil, err
	}

	permissions := dto.Permissions
	if len(permissions) == 0 {
		permissions = []string{"read"}
	}
	permJSON, err := json.Marshal(permissions)
	if err != nil {
		return nil, err
	}

	duration := clampDuration(time.Duration(dto.DurationMinutes)*time.Minute, isAI)
	now := s.now()

	shares := make([]Share, 0, len(dto.ItemIDs))
	for _, itemID := range dto.ItemIDs {
		sh := Share{
			ID:          uuid.New(),
			ItemType:    dto.ItemType,
			ItemID:      itemID,
			OwnerID:     owner,
			RecipientID: dto.RecipientID,
			WrappedKey:  wrapped,
			Permissions: permJSON,
			CreatedAt:   now,
			ExpiresAt:   now.Add(duration),
			Active:      true,
		}
		if err := s.repo.Create(&sh); err != nil {
			log.WithError(err).Error("Failed to create share")
			return nil, err
		}
		shares = append(shares, sh)
	}

	log.WithFields(logrus.Fields{
		"owner_id": owner,
		"count":    len(shares),
		"ai_grant": isAI,
	}).Info("Shares created")
	return shares, nil
}

// List returns the caller's shares as owner or recipient. Expiry is
// evaluated against the clock on every call; the stored active flag is
// never trusted for it.
func (s *service) List(ctx context.Context) ([]Share, error) {
	log := config.WithContext(ctx)
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.ListByParticipant(caller)
	if err != nil {
		log.WithError(err).Error("Failed to list shares")
		return nil, err
	}

	now := s.now()
	shares := make([]Share, 0, len(all))
	for _, sh := range all {
		if sh.State(now) == StateExpired {
			continue
		}
		shares = append(shares, sh)
	}
	return shares, nil
}

// Revoke flips the active flag through a conditional write and is
// idempotent: revoking an already-revoked or expired share succeeds
// silently.
func (s *service) Revoke(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	caller, err := callerID(ctx)
	if err != nil {
		return err
	}

	shareID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidID
	}

	rows, err := s.repo.RevokeByOwner(shareID, caller)
	if err != nil {
		// One retry: the race window is a single concurrent request.
		rows, err = s.repo.RevokeByOwner(shareID, caller)
		if err != nil {
			log.WithError(err).Error("Failed to revoke share")
			return err
		}
	}

	if rows == 0 {
		sh, err := s.repo.FindByID(shareID)
		if errors.Is(err, ErrShareNotFound) {
			return ErrShareNotFound
		}
		if err != nil {
			return err
		}
		if sh.OwnerID != caller {
			log.WithFields(logrus.Fields{
				"share_id": shareID,
				"user_id":  caller,
			}).Warn("Non-owner attempted to revoke share")
			return ErrForbidden
		}
	}

	log.WithField("share_id", shareID).Info("Share revoked")
	return nil
}

// Access records a successful read of a usable share and returns it.
// Revoked and expired shares are indistinguishable from absent ones.
func (s *service) Access(ctx context.Context, id string) (*Share, error) {
	log := config.WithContext(ctx)
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	shareID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	sh, err := s.repo.FindByID(shareID)
	if err != nil {
		return nil, err
	}

	isParticipant := sh.OwnerID == caller ||
		(sh.RecipientID != nil && *sh.RecipientID == caller)
	if !isParticipant {
		return nil, ErrShareNotFound
	}
	if !sh.Usable(s.now()) {
		return nil, ErrShareNotFound
	}

	rows, err := s.repo.IncrementAccess(shareID)
	if err != nil {
		log.WithError(err).Error("Failed to record share access")
		return nil, err
	}
	if rows == 0 {
		// Revoked between the read and the increment.
		return nil, ErrShareNotFound
	}

	sh.AccessCount++
	return sh, nil
}

func (s *service) recipientPublicKey(recipientID *uuid.UUID) (string, error) {
	if recipientID == nil {
		key := os.Getenv("AI_ANALYSIS_PUBLIC_KEY")
		if key == "" {
			return "", errors.New("AI_ANALYSIS_PUBLIC_KEY is not configured")
		}
		return key, nil
	}

	recipient, err := s.userRepo.FindByID(*recipientID)
	if errors.Is(err, user.ErrUserNotFound) {
		return "", ErrRecipientNotFound
	}
	if err != nil {
		return "", err
	}
	if !recipient.EncryptionReady() {
		return "", ErrRecipientNotReady
	}
	return recipient.PublicKey, nil
}

func (s *service) checkOwnership(itemType ItemType, itemID, owner uuid.UUID) error {
	switch itemType {
	case ItemGoal:
		if _, err := s.goalRepo.FindByIDAndUser(itemID, owner); err != nil {
			return ErrItemNotFound
		}
	case ItemJournalEntry:
		if _, err := s.journalRepo.FindByIDAndUser(itemID, owner); err != nil {
			return ErrItemNotFound
		}
	}
	return nil
}

// clampDuration applies the grant ceilings: 24h for ordinary recipients,
// 60 minutes for AI-analysis consumers. A missing duration gets the full
// ceiling.
func clampDuration(requested time.Duration, isAI bool) time.Duration {
	ceiling := DefaultGrantCeiling
	if isAI {
		ceiling = AIGrantCeiling
	}
	if requested <= 0 || requested > ceiling {
		return ceiling
	}
	return requested
}

package journal

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/momentumapp/momentum-lambda/internal/auth"
	"github.com/momentumapp/momentum-lambda/internal/config"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidID    = errors.New("invalid id format")
	ErrMissingField = errors.New("ciphertext and wrapped_content_key are required")
)

type Service interface {
	Create(ctx context.Context, dto CreateEntryDTO) (*Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id string) (*Entry, error)
	Update(ctx context.Context, id string, dto UpdateEntryDTO) (*Entry, error)
	Archive(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, dto CreateEntryDTO) (*Entry, error) {
	log := config.WithContext(ctx)
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if dto.Ciphertext == "" || dto.WrappedContentKey == "" {
		return nil, ErrMissingField
	}

	e := Entry{
		ID:                uuid.New(),
		UserID:            userID,
		Title:             dto.Title,
		Ciphertext:        dto.Ciphertext,
		WrappedContentKey: dto.WrappedContentKey,
		Mood:              dto.Mood,
	}
	if err := s.repo.Create(&e); err != nil {
		log.WithError(err).Error("Failed to create journal entry")
		return nil, err
	}

	log.WithField("entry_id", e.ID).Info("Journal entry created")
	return &e, nil
}

func (s *service) List(ctx context.Context) ([]Entry, error) {
	log := config.WithContext(ctx)
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list journal entries")
		return nil, err
	}
	return entries, nil
}

func (s *service) Get(ctx context.Context, id string) (*Entry, error) {
	return s.findOwned(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, dto UpdateEntryDTO) (*Entry, error) {
	log := config.WithContext(ctx)
	e, err := s.findOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		e.Title = *dto.Title
	}
	if dto.Ciphertext != nil {
		if *dto.Ciphertext == "" {
			return nil, ErrMissingField
		}
		e.Ciphertext = *dto.Ciphertext
	}
	if dto.Mood != nil {
		e.Mood = *dto.Mood
	}

	if err := s.repo.Update(e); err != nil {
		log.WithError(err).Error("Failed to update journal entry")
		return nil, err
	}
	return e, nil
}

func (s *service) Archive(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	e, err := s.findOwned(ctx, id)
	if err != nil {
		return err
	}

	e.Archived = true
	if err := s.repo.Update(e); err != nil {
		log.WithError(err).Error("Failed to archive journal entry")
		return err
	}

	log.WithField("entry_id", e.ID).Info("Journal entry archived")
	return nil
}

func (s *service) findOwned(ctx context.Context, id string) (*Entry, error) {
	log := config.WithContext(ctx)
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	entryID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	e, err := s.repo.FindByIDAndUser(entryID, userID)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			log.WithField("entry_id", id).Warn("Journal entry not found or does not belong to user")
		}
		return nil, err
	}
	return e, nil
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

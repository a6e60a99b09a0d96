package journal

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEntryNotFound = errors.New("journal entry not found")

type Repository interface {
	Create(e *Entry) error
	FindByIDAndUser(id, userID uuid.UUID) (*Entry, error)
	FindByID(id uuid.UUID) (*Entry, error)
	ListByUser(userID uuid.UUID) ([]Entry, error)
	Update(e *Entry) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(e *Entry) error {
	return r.db.Create(e).Error
}

func (r *repository) FindByIDAndUser(id, userID uuid.UUID) (*Entry, error) {
	var e Entry
	if err := r.db.First(&e, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByID(id uuid.UUID) (*Entry, error) {
	var e Entry
	if err := r.db.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) ListByUser(userID uuid.UUID) ([]Entry, error) {
	var entries []Entry
	if err := r.db.
		Where("user_id = ? AND archived = false", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) Update(e *Entry) error {
	return r.db.Save(e).Error
}

package share

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(s *Share) error
	FindByID(id uuid.UUID) (*Share, error)
	ListByParticipant(userID uuid.UUID) ([]Share, error)
	RevokeByOwner(id, ownerID uuid.UUID) (int64, error)
	IncrementAccess(id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(s *Share) error {
	return r.db.Create(s).Error
}

func (r *repository) FindByID(id uuid.UUID) (*Share, error) {
	var s Share
	if err := r.db.First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListByParticipant(userID uuid.UUID) ([]Share, error) {
	var shares []Share
	if err := r.db.
		Where("owner_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

// RevokeByOwner is the conditional write: the owner predicate is part of
// the statement, so a non-owner can never flip the flag. Returns the
// number of rows matched.
func (r *repository) RevokeByOwner(id, ownerID uuid.UUID) (int64, error) {
	res := r.db.Model(&Share{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("active", false)
	return res.RowsAffected, res.Error
}

// IncrementAccess bumps the counter only while the share is still active.
func (r *repository) IncrementAccess(id uuid.UUID) (int64, error) {
	res := r.db.Model(&Share{}).
		Where("id = ? AND active = true", id).
		Update("access_count", gorm.Expr("access_count + 1"))
	return res.RowsAffected, res.Error
}

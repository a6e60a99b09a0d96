package goal

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	CreateWithQuota(g *Goal, maxActive int) error
	FindByIDAndUser(id, userID uuid.UUID) (*Goal, error)
	ListByUser(userID uuid.UUID) ([]Goal, error)
	Update(g *Goal) error
	CountActiveByUser(userID uuid.UUID) (int64, error)
	CreateActivity(a *Activity) error
	FindActivity(id uuid.UUID) (*Activity, error)
	ListActivitiesByGoal(goalID uuid.UUID) ([]Activity, error)
	ListRecentActivitiesByUser(userID uuid.UUID, limit int) ([]Activity, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateWithQuota inserts the goal only while the owner holds fewer than
// maxActive active goals. The count and the insert share one transaction
// so two concurrent creates cannot both pass the check.
func (r *repository) CreateWithQuota(g *Goal, maxActive int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Goal{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND status = ?", g.UserID, StatusActive).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(maxActive) {
			return ErrQuotaExceeded
		}
		return tx.Create(g).Error
	})
}

func (r *repository) FindByIDAndUser(id, userID uuid.UUID) (*Goal, error) {
	var g Goal
	if err := r.db.First(&g, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *repository) ListByUser(userID uuid.UUID) ([]Goal, error) {
	var goals []Goal
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *repository) Update(g *Goal) error {
	return r.db.Save(g).Error
}

func (r *repository) CountActiveByUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&Goal{}).
		Where("user_id = ? AND status = ?", userID, StatusActive).
		Count(&count).Error
	return count, err
}

// CreateActivity is an append-only insert. A replayed client-supplied id
// hits the conflict clause and becomes a no-op, which makes at-least-once
// retries safe.
func (r *repository) CreateActivity(a *Activity) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(a).Error
}

func (r *repository) FindActivity(id uuid.UUID) (*Activity, error) {
	var a Activity
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListActivitiesByGoal(goalID uuid.UUID) ([]Activity, error) {
	var activities []Activity
	if err := r.db.
		Where("goal_id = ?", goalID).
		Order("occurred_at ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *repository) ListRecentActivitiesByUser(userID uuid.UUID, limit int) ([]Activity, error) {
	var activities []Activity
	if err := r.db.
		Joins("JOIN goals ON goals.id = activities.goal_id").
		Where("goals.user_id = ?", userID).
		Order("activities.occurred_at DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

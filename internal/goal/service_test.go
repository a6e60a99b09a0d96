package goal

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momentumapp/momentum-lambda/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repository mirroring the store's quota and
// conflict semantics.
type memRepo struct {
	goals      map[uuid.UUID]*Goal
	activities map[uuid.UUID][]Activity
	seen       map[uuid.UUID]bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		goals:      make(map[uuid.UUID]*Goal),
		activities: make(map[uuid.UUID][]Activity),
		seen:       make(map[uuid.UUID]bool),
	}
}

func (r *memRepo) CreateWithQuota(g *Goal, maxActive int) error {
	count, _ := r.CountActiveByUser(g.UserID)
	if count >= int64(maxActive) {
		return ErrQuotaExceeded
	}
	stored := *g
	r.goals[g.ID] = &stored
	return nil
}

func (r *memRepo) FindByIDAndUser(id, userID uuid.UUID) (*Goal, error) {
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return nil, ErrGoalNotFound
	}
	copied := *g
	return &copied, nil
}

func (r *memRepo) ListByUser(userID uuid.UUID) ([]Goal, error) {
	var out []Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *memRepo) Update(g *Goal) error {
	stored := *g
	r.goals[g.ID] = &stored
	return nil
}

func (r *memRepo) CountActiveByUser(userID uuid.UUID) (int64, error) {
	var count int64
	for _, g := range r.goals {
		if g.UserID == userID && g.Status == StatusActive {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) CreateActivity(a *Activity) error {
	if r.seen[a.ID] {
		return nil // conflict on id: no-op
	}
	r.seen[a.ID] = true
	r.activities[a.GoalID] = append(r.activities[a.GoalID], *a)
	return nil
}

func (r *memRepo) FindActivity(id uuid.UUID) (*Activity, error) {
	for _, acts := range r.activities {
		for _, a := range acts {
			if a.ID == id {
				copied := a
				return &copied, nil
			}
		}
	}
	return nil, ErrGoalNotFound
}

func (r *memRepo) ListActivitiesByGoal(goalID uuid.UUID) ([]Activity, error) {
	return r.activities[goalID], nil
}

func (r *memRepo) ListRecentActivitiesByUser(userID uuid.UUID, limit int) ([]Activity, error) {
	var out []Activity
	for goalID, acts := range r.activities {
		if g, ok := r.goals[goalID]; ok && g.UserID == userID {
			out = append(out, acts...)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func authedContext(userID uuid.UUID) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.Claims{
		UserID: userID.String(),
		Role:   "user",
	})
}

func recurringDTO(title string) CreateGoalDTO {
	return CreateGoalDTO{
		Title:   title,
		Pattern: PatternRecurring,
		Target:  TargetSpecDTO{Metric: "sessions", Value: 3, Unit: "count", Period: PeriodWeek},
	}
}

func TestServiceCreate(t *testing.T) {
	userID := uuid.New()
	ctx := authedContext(userID)

	t.Run("Success", func(t *testing.T) {
		svc := NewService(newMemRepo())
		resp, err := svc.Create(ctx, recurringDTO("Run more"))
		require.NoError(t, err)
		assert.Equal(t, StatusActive, resp.Status)
		assert.Equal(t, VisibilityPrivate, resp.Visibility)
		assert.Equal(t, userID, resp.UserID)
	})

	t.Run("InvalidTargetSpec", func(t *testing.T) {
		svc := NewService(newMemRepo())
		dto := recurringDTO("Run more")
		dto.Target.Period = ""
		_, err := svc.Create(ctx, dto)
		verr, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "target.period", verr.Field)
	})

	t.Run("QuotaExceeded", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo)
		for i := 0; i < ActiveGoalQuota; i++ {
			_, err := svc.Create(ctx, recurringDTO("Goal"))
			require.NoError(t, err)
		}

		_, err := svc.Create(ctx, recurringDTO("One too many"))
		assert.ErrorIs(t, err, ErrQuotaExceeded)
	})

	t.Run("ArchivedGoalsFreeQuota", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo)
		var firstID uuid.UUID
		for i := 0; i < ActiveGoalQuota; i++ {
			resp, err := svc.Create(ctx, recurringDTO("Goal"))
			require.NoError(t, err)
			if i == 0 {
				firstID = resp.ID
			}
		}

		require.NoError(t, svc.Archive(ctx, firstID.String()))

		_, err := svc.Create(ctx, recurringDTO("Fits again"))
		assert.NoError(t, err)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(newMemRepo())
		_, err := svc.Create(context.Background(), recurringDTO("Nope"))
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestServiceUpdate(t *testing.T) {
	userID := uuid.New()
	ctx := authedContext(userID)

	setup := func(t *testing.T) (Service, uuid.UUID) {
		svc := NewService(newMemRepo())
		resp, err := svc.Create(ctx, recurringDTO("Meditate"))
		require.NoError(t, err)
		return svc, resp.ID
	}

	t.Run("PauseAndResume", func(t *testing.T) {
		svc, id := setup(t)

		paused := StatusPaused
		resp, err := svc.Update(ctx, id.String(), UpdateGoalDTO{Status: &paused})
		require.NoError(t, err)
		assert.Equal(t, StatusPaused, resp.Status)

		active := StatusActive
		resp, err = svc.Update(ctx, id.String(), UpdateGoalDTO{Status: &active})
		require.NoError(t, err)
		assert.Equal(t, StatusActive, resp.Status)
	})

	t.Run("CompletedIsTerminal", func(t *testing.T) {
		svc, id := setup(t)

		completed := StatusCompleted
		_, err := svc.Update(ctx, id.String(), UpdateGoalDTO{Status: &completed})
		require.NoError(t, err)

		active := StatusActive
		_, err = svc.Update(ctx, id.String(), UpdateGoalDTO{Status: &active})
		verr, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "status", verr.Field)
	})

	t.Run("OtherUsersGoalIsNotFound", func(t *testing.T) {
		svc, id := setup(t)
		title := "hijack"
		_, err := svc.Update(authedContext(uuid.New()), id.String(), UpdateGoalDTO{Title: &title})
		assert.ErrorIs(t, err, ErrGoalNotFound)
	})

	t.Run("MalformedID", func(t *testing.T) {
		svc, _ := setup(t)
		_, err := svc.Get(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestServiceArchive(t *testing.T) {
	userID := uuid.New()
	ctx := authedContext(userID)
	svc := NewService(newMemRepo())

	resp, err := svc.Create(ctx, recurringDTO("Read"))
	require.NoError(t, err)

	require.NoError(t, svc.Archive(ctx, resp.ID.String()))

	got, err := svc.Get(ctx, resp.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusArchived, got.Status)

	err = svc.Archive(ctx, resp.ID.String())
	_, ok := AsValidationError(err)
	assert.True(t, ok, "archived is terminal")
}

func TestServiceLogActivity(t *testing.T) {
	userID := uuid.New()
	ctx := authedContext(userID)

	t.Run("IdempotentReplay", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo)
		resp, err := svc.Create(ctx, recurringDTO("Swim"))
		require.NoError(t, err)

		clientID := uuid.New()
		dto := LogActivityDTO{ID: &clientID, Value: f64(1)}

		_, err = svc.LogActivity(ctx, resp.ID.String(), dto)
		require.NoError(t, err)
		_, err = svc.LogActivity(ctx, resp.ID.String(), dto)
		require.NoError(t, err)

		acts, err := svc.ListActivities(ctx, resp.ID.String())
		require.NoError(t, err)
		assert.Len(t, acts, 1)
	})

	t.Run("PausedGoalRejectsActivities", func(t *testing.T) {
		svc := NewService(newMemRepo())
		resp, err := svc.Create(ctx, recurringDTO("Swim"))
		require.NoError(t, err)

		paused := StatusPaused
		_, err = svc.Update(ctx, resp.ID.String(), UpdateGoalDTO{Status: &paused})
		require.NoError(t, err)

		_, err = svc.LogActivity(ctx, resp.ID.String(), LogActivityDTO{Value: f64(1)})
		_, ok := AsValidationError(err)
		assert.True(t, ok)
	})

	t.Run("MilestoneAutoCompletes", func(t *testing.T) {
		svc := NewService(newMemRepo())
		resp, err := svc.Create(ctx, CreateGoalDTO{
			Title:   "Save 50k",
			Pattern: PatternMilestone,
			Target:  TargetSpecDTO{Metric: "savings", Value: 50000, Unit: "BRL"},
		})
		require.NoError(t, err)

		_, err = svc.LogActivity(ctx, resp.ID.String(), LogActivityDTO{Value: f64(30000)})
		require.NoError(t, err)

		got, err := svc.Get(ctx, resp.ID.String())
		require.NoError(t, err)
		assert.Equal(t, StatusActive, got.Status)

		_, err = svc.LogActivity(ctx, resp.ID.String(), LogActivityDTO{Value: f64(20000)})
		require.NoError(t, err)

		got, err = svc.Get(ctx, resp.ID.String())
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, got.Status)
	})

	t.Run("DefaultsTimezoneAndTimestamp", func(t *testing.T) {
		svc := NewService(newMemRepo())
		resp, err := svc.Create(ctx, recurringDTO("Swim"))
		require.NoError(t, err)

		before := time.Now()
		a, err := svc.LogActivity(ctx, resp.ID.String(), LogActivityDTO{Value: f64(1)})
		require.NoError(t, err)
		assert.Equal(t, "UTC", a.Timezone)
		assert.False(t, a.OccurredAt.Before(before))
	})
}

func TestServiceDashboard(t *testing.T) {
	userID := uuid.New()
	ctx := authedContext(userID)
	svc := NewService(newMemRepo())

	_, err := svc.Create(ctx, recurringDTO("Run"))
	require.NoError(t, err)
	resp, err := svc.Create(ctx, CreateGoalDTO{
		Title:   "Save",
		Pattern: PatternMilestone,
		Target:  TargetSpecDTO{Metric: "savings", Value: 1000},
	})
	require.NoError(t, err)
	require.NoError(t, svc.Archive(ctx, resp.ID.String()))

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, dash.Stats.Total)
	assert.Equal(t, 1, dash.Stats.Active)
	assert.Equal(t, 1, dash.Stats.Archived)
	assert.Equal(t, 1, dash.Patterns.Recurring)
	assert.Equal(t, 1, dash.Patterns.Milestone)
}

package goal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momentumapp/momentum-lambda/internal/auth"
	"github.com/momentumapp/momentum-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

// ActiveGoalQuota is the maximum number of simultaneously active goals a
// user may hold.
const ActiveGoalQuota = 50

const dashboardRecentLimit = 10

type Service interface {
	Create(ctx context.Context, dto CreateGoalDTO) (*GoalResponse, error)
	List(ctx context.Context) ([]GoalResponse, error)
	Get(ctx context.Context, id string) (*GoalResponse, error)
	Update(ctx context.Context, id string, dto UpdateGoalDTO) (*GoalResponse, error)
	Archive(ctx context.Context, id string) error
	LogActivity(ctx context.Context, goalID string, dto LogActivityDTO) (*Activity, error)
	ListActivities(ctx context.Context, goalID string) ([]Activity, error)
	GetProgress(ctx context.Context, goalID string, window ProgressWindow) (*ProgressSnapshot, error)
	GetStreak(ctx context.Context, goalID string) (*StreakResult, error)
	Dashboard(ctx context.Context) (*DashboardResponse, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

func parseUUID(log logrus.FieldLogger, id string, entityName string) (uuid.UUID, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warnf("Invalid %s ID", entityName)
		return uuid.Nil, ErrInvalidID
	}
	return parsedID, nil
}

func (s *service) Create(ctx context.Context, dto CreateGoalDTO) (*GoalResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create goal")
	if err != nil {
		return nil, err
	}

	if dto.Title == "" {
		return nil, validationErr("title", "is required")
	}
	if verr := ValidateTargetSpec(dto.Pattern, dto.Target); verr != nil {
		return nil, verr
	}

	g := Goal{
		ID:               uuid.New(),
		UserID:           userID,
		Title:            dto.Title,
		Category:         dto.Category,
		Pattern:          dto.Pattern,
		TargetMetric:     dto.Target.Metric,
		TargetValue:      dto.Target.Value,
		TargetUnit:       dto.Target.Unit,
		TargetPeriod:     dto.Target.Period,
		TargetDirection:  dto.Target.Direction,
		TargetType:       dto.Target.Type,
		Frequency:        dto.Frequency,
		CheckInFrequency: dto.CheckInFrequency,
		Status:           StatusActive,
		Visibility:       dto.Visibility,
	}
	if g.Visibility == "" {
		g.Visibility = VisibilityPrivate
	}

	// The quota check is a check-then-act guarded by the store's
	// transaction; a lost race is retried once with a fresh read before
	// surfacing.
	err = s.repo.CreateWithQuota(&g, ActiveGoalQuota)
	if err == ErrPreconditionFailed {
		err = s.repo.CreateWithQuota(&g, ActiveGoalQuota)
	}
	if err != nil {
		if err == ErrQuotaExceeded {
			log.WithField("user_id", userID).Warn("Active goal quota reached")
			return nil, ErrQuotaExceeded
		}
		log.WithError(err).Error("Failed to create goal")
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Goal created successfully")
	return toResponse(&g), nil
}

func (s *service) List(ctx context.Context) ([]GoalResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list goals")
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list goals")
		return nil, err
	}

	responses := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		responses = append(responses, *toResponse(&goals[i]))
	}
	return responses, nil
}

func (s *service) Get(ctx context.Context, id string) (*GoalResponse, error) {
	g, _, err := s.findOwned(ctx, id, "get goal")
	if err != nil {
		return nil, err
	}
	return toResponse(g), nil
}

func (s *service) Update(ctx context.Context, id string, dto UpdateGoalDTO) (*GoalResponse, error) {
	log := config.WithContext(ctx)
	g, _, err := s.findOwned(ctx, id, "update goal")
	if err != nil {
		return nil, err
	}

	if dto.Status != nil && *dto.Status != g.Status {
		if !dto.Status.IsValid() {
			return nil, validationErr("status", "unknown status")
		}
		if !g.Status.CanTransitionTo(*dto.Status) {
			return nil, validationErr("status", "transition from "+string(g.Status)+" to "+string(*dto.Status)+" is not allowed")
		}
		g.Status = *dto.Status
	}

	if dto.Title != nil {
		if *dto.Title == "" {
			return nil, validationErr("title", "must not be empty")
		}
		g.Title = *dto.Title
	}
	if dto.Category != nil {
		g.Category = *dto.Category
	}
	if dto.Frequency != nil {
		g.Frequency = *dto.Frequency
	}
	if dto.CheckInFrequency != nil {
		g.CheckInFrequency = *dto.CheckInFrequency
	}
	if dto.Visibility != nil {
		g.Visibility = *dto.Visibility
	}
	g.UpdatedAt = s.now()

	if err := s.repo.Update(g); err != nil {
		log.WithError(err).Error("Failed to update goal")
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Goal updated successfully")
	return toResponse(g), nil
}

// Archive is the soft delete: the record stays, the status flips.
func (s *service) Archive(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	g, _, err := s.findOwned(ctx, id, "archive goal")
	if err != nil {
		return err
	}

	if !g.Status.CanTransitionTo(StatusArchived) {
		return validationErr("status", "transition from "+string(g.Status)+" to ARCHIVED is not allowed")
	}

	g.Status = StatusArchived
	g.UpdatedAt = s.now()
	if err := s.repo.Update(g); err != nil {
		log.WithError(err).Error("Failed to archive goal")
		return err
	}

	log.WithField("goal_id", g.ID).Info("Goal archived")
	return nil
}

func (s *service) LogActivity(ctx context.Context, goalID string, dto LogActivityDTO) (*Activity, error) {
	log := config.WithContext(ctx)
	g, _, err := s.findOwned(ctx, goalID, "log activity")
	if err != nil {
		return nil, err
	}

	if g.Status != StatusActive {
		return nil, validationErr("status", "activities can only be logged against an active goal")
	}
	if verr := ValidateActivity(g, dto); verr != nil {
		return nil, verr
	}

	a := Activity{
		GoalID:   g.ID,
		Value:    *dto.Value,
		Note:     dto.Note,
		Timezone: dto.Timezone,
		Metadata: dto.Metadata,
	}
	if dto.ID != nil {
		a.ID = *dto.ID
	} else {
		a.ID = uuid.New()
	}
	if dto.OccurredAt != nil {
		a.OccurredAt = *dto.OccurredAt
	} else {
		a.OccurredAt = s.now()
	}
	if a.Timezone == "" {
		a.Timezone = "UTC"
	}

	if err := s.repo.CreateActivity(&a); err != nil {
		log.WithError(err).Error("Failed to log activity")
		return nil, err
	}

	// A milestone goal completes the moment its cumulative total reaches
	// the target.
	if g.Pattern == PatternMilestone {
		activities, err := s.repo.ListActivitiesByGoal(g.ID)
		if err == nil && CumulativeComplete(g, activities) && g.Status.CanTransitionTo(StatusCompleted) {
			g.Status = StatusCompleted
			g.UpdatedAt = s.now()
			if err := s.repo.Update(g); err != nil {
				log.WithError(err).Error("Failed to mark milestone goal completed")
			}
		}
	}

	log.WithFields(logrus.Fields{
		"goal_id":     g.ID,
		"activity_id": a.ID,
	}).Info("Activity logged")
	return &a, nil
}

func (s *service) ListActivities(ctx context.Context, goalID string) ([]Activity, error) {
	log := config.WithContext(ctx)
	g, _, err := s.findOwned(ctx, goalID, "list activities")
	if err != nil {
		return nil, err
	}

	activities, err := s.repo.ListActivitiesByGoal(g.ID)
	if err != nil {
		log.WithError(err).Error("Failed to list activities")
		return nil, err
	}
	return activities, nil
}

func (s *service) GetProgress(ctx context.Context, goalID string, window ProgressWindow) (*ProgressSnapshot, error) {
	log := config.WithContext(ctx)
	if window == "" {
		window = WindowAll
	}
	if !window.IsValid() {
		return nil, validationErr("window", "must be one of TODAY, WEEK, MONTH, QUARTER, YEAR, ALL")
	}

	g, _, err := s.findOwned(ctx, goalID, "get progress")
	if err != nil {
		return nil, err
	}

	activities, err := s.repo.ListActivitiesByGoal(g.ID)
	if err != nil {
		log.WithError(err).Error("Failed to load activities for progress")
		return nil, err
	}

	snapshot := ComputeProgress(g, activities, window, s.now())
	return &snapshot, nil
}

func (s *service) GetStreak(ctx context.Context, goalID string) (*StreakResult, error) {
	log := config.WithContext(ctx)
	g, _, err := s.findOwned(ctx, goalID, "get streak")
	if err != nil {
		return nil, err
	}

	activities, err := s.repo.ListActivitiesByGoal(g.ID)
	if err != nil {
		log.WithError(err).Error("Failed to load activities for streak")
		return nil, err
	}

	result := ComputeStreak(g, activities, s.now())
	return &result, nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "load dashboard")
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to load goals for dashboard")
		return nil, err
	}

	var resp DashboardResponse
	resp.Stats.Total = len(goals)
	for _, g := range goals {
		switch g.Status {
		case StatusActive:
			resp.Stats.Active++
		case StatusCompleted:
			resp.Stats.Completed++
		case StatusPaused:
			resp.Stats.Paused++
		case StatusArchived:
			resp.Stats.Archived++
		}
		switch g.Pattern {
		case PatternRecurring:
			resp.Patterns.Recurring++
		case PatternMilestone:
			resp.Patterns.Milestone++
		case PatternTarget:
			resp.Patterns.Target++
		case PatternStreak:
			resp.Patterns.Streak++
		case PatternLimit:
			resp.Patterns.Limit++
		}
	}

	recent, err := s.repo.ListRecentActivitiesByUser(userID, dashboardRecentLimit)
	if err != nil {
		log.WithError(err).Error("Failed to load recent activities")
		return nil, err
	}
	resp.RecentActivities = recent

	return &resp, nil
}

// findOwned loads a goal scoped to the caller. A goal that exists but
// belongs to someone else is reported as not found.
func (s *service) findOwned(ctx context.Context, id string, action string) (*Goal, uuid.UUID, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, action)
	if err != nil {
		return nil, uuid.Nil, err
	}

	goalID, err := parseUUID(log, id, "goal")
	if err != nil {
		return nil, uuid.Nil, err
	}

	g, err := s.repo.FindByIDAndUser(goalID, userID)
	if err != nil {
		if err == ErrGoalNotFound {
			log.WithFields(logrus.Fields{
				"goal_id": id,
				"user_id": userID,
			}).Warn("Goal not found or does not belong to user")
			return nil, uuid.Nil, ErrGoalNotFound
		}
		log.WithError(err).Error("Error finding goal by ID")
		return nil, uuid.Nil, err
	}
	return g, userID, nil
}

func toResponse(g *Goal) *GoalResponse {
	return &GoalResponse{
		ID:       g.ID,
		UserID:   g.UserID,
		Title:    g.Title,
		Category: g.Category,
		Pattern:  g.Pattern,
		Target: TargetSpecDTO{
			Metric:    g.TargetMetric,
			Value:     g.TargetValue,
			Unit:      g.TargetUnit,
			Period:    g.TargetPeriod,
			Direction: g.TargetDirection,
			Type:      g.TargetType,
		},
		Frequency:        g.Frequency,
		CheckInFrequency: g.CheckInFrequency,
		Status:           g.Status,
		Visibility:       g.Visibility,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
}

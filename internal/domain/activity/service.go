package activity

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"agroledger/internal/core/apperror"
	"agroledger/internal/core/tx"
	"agroledger/internal/domain/filter"
	"agroledger/pkg/logger"
)

const placeholderName = "-"

// Config tunes the analytics report.
type Config struct {
	// TimelineLimit caps the timeline and therefore the hour histogram.
	TimelineLimit int
	// Location is the zone hours of the day are counted in.
	Location *time.Location
}

// DefaultConfig returns the 500-event window counted in UTC.
func DefaultConfig() Config {
	return Config{TimelineLimit: 500, Location: time.UTC}
}

// CheckInput is an access check request.
type CheckInput struct {
	TelegramID int64
	FullName   string
}

// CheckResult answers an access check.
type CheckResult struct {
	Allowed bool
	Created bool
}

// LogInput is an activity logging request.
type LogInput struct {
	TelegramID    int64
	ActionType    string
	ActionName    string
	ActionPayload string
	IsAllowed     bool
}

// Service provides the bot gate, activity logging and analytics.
type Service struct {
	repo      Repository
	txManager tx.Manager
	cfg       Config
	now       func() time.Time
}

// NewService creates a new activity service.
func NewService(repo Repository, txManager tx.Manager, cfg Config) *Service {
	if cfg.TimelineLimit <= 0 {
		cfg.TimelineLimit = DefaultConfig().TimelineLimit
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{
		repo:      repo,
		txManager: txManager,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Check gets or creates the user, keeps its name current and records the
// access check as a system activity.
func (s *Service) Check(ctx context.Context, in CheckInput) (CheckResult, error) {
	if in.TelegramID == 0 {
		return CheckResult{}, apperror.NewValidation("telegram_id is required").
			WithDetail("field", "telegram_id")
	}

	var result CheckResult
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		user, created, err := s.repo.GetOrCreateUser(ctx, in.TelegramID, in.FullName)
		if err != nil {
			return fmt.Errorf("get or create bot user: %w", err)
		}
		if created {
			logger.Info(ctx, "bot user created", "telegram_id", in.TelegramID, "user_id", user.ID)
		}

		if in.FullName != "" && user.FullName != in.FullName {
			if err := s.repo.RenameUser(ctx, user.ID, in.FullName); err != nil {
				return fmt.Errorf("rename bot user: %w", err)
			}
			logger.Info(ctx, "bot user renamed", "user_id", user.ID)
			user.FullName = in.FullName
		}

		if err := s.repo.CreateActivity(ctx, &Activity{
			UserID:        user.ID,
			ActionType:    ActionSystem,
			ActionName:    AccessCheckAction,
			ActionPayload: AccessCheckPayload,
			IsAllowed:     user.IsActive,
			CreatedAt:     s.now().UTC(),
		}); err != nil {
			return fmt.Errorf("record access check: %w", err)
		}

		result = CheckResult{Allowed: user.IsActive, Created: created}
		return nil
	})
	if err != nil {
		return CheckResult{}, err
	}

	return result, nil
}

// LogActivity appends one activity for an existing user.
func (s *Service) LogActivity(ctx context.Context, in LogInput) (*Activity, error) {
	if in.TelegramID == 0 {
		return nil, apperror.NewValidation("telegram_id is required").
			WithDetail("field", "telegram_id")
	}

	user, err := s.repo.FindUserByTelegramID(ctx, in.TelegramID)
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.Warn(ctx, "activity for unknown bot user", "telegram_id", in.TelegramID)
		}
		return nil, err
	}

	name := in.ActionName
	if name == "" {
		name = DefaultActionName
	}

	a := &Activity{
		UserID:        user.ID,
		ActionType:    ParseActionType(in.ActionType),
		ActionName:    Truncate(name, MaxActionNameLength),
		ActionPayload: Truncate(in.ActionPayload, MaxPayloadLength),
		IsAllowed:     in.IsAllowed,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.CreateActivity(ctx, a); err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}

	logger.Debug(ctx, "bot activity logged", "user_id", user.ID, "action_type", a.ActionType, "action_name", a.ActionName)
	return a, nil
}

// Analytics summarizes activity per user, lists the most recent events and
// counts them per hour of day. rawUserID narrows everything to one user;
// an unparseable value matches nobody.
func (s *Service) Analytics(ctx context.Context, rawUserID string) (*Analytics, error) {
	uid := filter.ParseID(rawUserID)
	if uid.Invalid() {
		return BuildAnalytics(nil, nil, s.cfg.TimelineLimit, s.cfg.Location), nil
	}

	var userID *int64
	if uid.IsSet() {
		v := uid.Value()
		userID = &v
	}

	var (
		summaries []UserSummaryRow
		timeline  []TimelineEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summaries, err = s.repo.UserSummaries(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		timeline, err = s.repo.RecentActivities(gctx, userID, s.cfg.TimelineLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("activity analytics: %w", err)
	}

	return BuildAnalytics(summaries, timeline, s.cfg.TimelineLimit, s.cfg.Location), nil
}

// BuildAnalytics derives the report from store rows. The timeline keeps the
// newest limit entries and the histogram counts only those.
func BuildAnalytics(rows []UserSummaryRow, timeline []TimelineEntry, limit int, loc *time.Location) *Analytics {
	users := make([]UserSummary, 0, len(rows))
	for _, row := range rows {
		users = append(users, UserSummary{
			UserID:        row.UserID,
			FullName:      nameOr(row.FullName),
			TelegramID:    row.TelegramID,
			FirstActivity: row.FirstActivity,
			LastActivity:  row.LastActivity,
			ActionsCount:  row.ActionsCount,
			ActiveSeconds: ActiveSeconds(row.FirstActivity, row.LastActivity),
		})
	}
	slices.SortStableFunc(users, func(a, b UserSummary) int {
		if c := cmp.Compare(a.FullName, b.FullName); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})

	if timeline == nil {
		timeline = []TimelineEntry{}
	}
	slices.SortStableFunc(timeline, func(a, b TimelineEntry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if limit > 0 && len(timeline) > limit {
		timeline = timeline[:limit]
	}

	return &Analytics{
		Users:    users,
		Timeline: timeline,
		ByHour:   HourHistogram(timeline, loc),
	}
}

// ActiveSeconds is the whole-second span between first and last activity,
// zero when either bound is missing.
func ActiveSeconds(first, last *time.Time) int64 {
	if first == nil || last == nil {
		return 0
	}
	span := last.Sub(*first)
	if span <= 0 {
		return 0
	}
	return int64(span / time.Second)
}

// HourHistogram counts entries per hour of day in loc. It always has 24 buckets.
func HourHistogram(timeline []TimelineEntry, loc *time.Location) []HourBucket {
	if loc == nil {
		loc = time.UTC
	}
	buckets := make([]HourBucket, HoursPerDay)
	for h := range buckets {
		buckets[h].Hour = h
	}
	for _, e := range timeline {
		buckets[e.CreatedAt.In(loc).Hour()].ActionsCount++
	}
	return buckets
}

func nameOr(name *string) string {
	if name == nil || *name == "" {
		return placeholderName
	}
	return *name
}

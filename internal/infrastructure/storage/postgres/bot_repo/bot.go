// Package bot_repo provides the PostgreSQL implementation of activity.Repository.
package bot_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"agroledger/internal/core/apperror"
	"agroledger/internal/domain/activity"
	"agroledger/internal/infrastructure/storage/postgres"
)

const (
	tableUsers      = "query_botuser"
	tableActivities = "query_botuseractivity"
)

var userColumns = postgres.ExtractDBColumns[activity.User]()

// BotRepo implements activity.Repository.
type BotRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
	now     func() time.Time
}

var _ activity.Repository = (*BotRepo)(nil)

// NewBotRepo creates a new bot user repository.
func NewBotRepo(txm *postgres.TxManager) *BotRepo {
	return &BotRepo{
		txm:     txm,
		builder: postgres.Builder(),
		now:     time.Now,
	}
}

// FindUserByTelegramID returns the user or apperror NotFound.
func (r *BotRepo) FindUserByTelegramID(ctx context.Context, telegramID int64) (*activity.User, error) {
	query, args, err := r.builder.Select(userColumns...).
		From(tableUsers).
		Where(squirrel.Eq{"telegram_id": telegramID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find user query: %w", err)
	}

	var u activity.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &u, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("bot user", telegramID)
		}
		return nil, apperror.NewDatabase("find bot user", err)
	}
	return &u, nil
}

func (r *BotRepo) insertUserQuery(telegramID int64, fullName string, createdAt time.Time) squirrel.InsertBuilder {
	return r.builder.Insert(tableUsers).
		Columns("telegram_id", "full_name", "is_active", "created_at").
		Values(telegramID, fullName, false, createdAt).
		Suffix("ON CONFLICT (telegram_id) DO NOTHING RETURNING id, telegram_id, full_name, is_active, created_at")
}

// GetOrCreateUser inserts an inactive user unless one exists for telegramID.
// A concurrent insert of the same id loses the conflict and reads the winner.
func (r *BotRepo) GetOrCreateUser(ctx context.Context, telegramID int64, fullName string) (*activity.User, bool, error) {
	query, args, err := r.insertUserQuery(telegramID, fullName, r.now()).ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build insert user query: %w", err)
	}

	var u activity.User
	err = pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &u, query, args...)
	switch {
	case err == nil:
		return &u, true, nil
	case pgxscan.NotFound(err):
		existing, err := r.FindUserByTelegramID(ctx, telegramID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	default:
		return nil, false, apperror.NewDatabase("create bot user", err)
	}
}

// RenameUser updates the stored display name.
func (r *BotRepo) RenameUser(ctx context.Context, userID int64, fullName string) error {
	query, args, err := r.builder.Update(tableUsers).
		Set("full_name", fullName).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build rename user query: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewDatabase("rename bot user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("bot user", userID)
	}
	return nil
}

func (r *BotRepo) insertActivityQuery(a *activity.Activity) squirrel.InsertBuilder {
	return r.builder.Insert(tableActivities).
		Columns("user_id", "action_type", "action_name", "action_payload", "is_allowed", "created_at").
		Values(a.UserID, string(a.ActionType), a.ActionName, a.ActionPayload, a.IsAllowed, a.CreatedAt).
		Suffix("RETURNING id")
}

// CreateActivity appends one activity row and fills its ID.
func (r *BotRepo) CreateActivity(ctx context.Context, a *activity.Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.now()
	}
	query, args, err := r.insertActivityQuery(a).ToSql()
	if err != nil {
		return fmt.Errorf("build insert activity query: %w", err)
	}
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, query, args...).Scan(&a.ID); err != nil {
		return apperror.NewDatabase("create bot activity", err)
	}
	return nil
}

func (r *BotRepo) userSummariesQuery(userID *int64) squirrel.SelectBuilder {
	q := r.builder.Select(
		"a.user_id", "u.full_name", "u.telegram_id",
		"MIN(a.created_at) AS first_activity", "MAX(a.created_at) AS last_activity",
		"COUNT(a.id) AS actions_count",
	).
		From(tableActivities + " a").
		LeftJoin(tableUsers + " u ON u.id = a.user_id")
	if userID != nil {
		q = q.Where(squirrel.Eq{"a.user_id": *userID})
	}
	return q.GroupBy("a.user_id", "u.full_name", "u.telegram_id").
		OrderBy("u.full_name", "a.user_id")
}

// UserSummaries groups activities per user.
func (r *BotRepo) UserSummaries(ctx context.Context, userID *int64) ([]activity.UserSummaryRow, error) {
	query, args, err := r.userSummariesQuery(userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user summaries query: %w", err)
	}
	var rows []activity.UserSummaryRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query, args...); err != nil {
		return nil, apperror.NewDatabase("bot user summaries", err)
	}
	return rows, nil
}

func (r *BotRepo) recentActivitiesQuery(userID *int64, limit int) squirrel.SelectBuilder {
	q := r.builder.Select(
		"a.id", "a.user_id", "u.full_name", "u.telegram_id", "a.action_type",
		"a.action_name", "a.action_payload", "a.is_allowed", "a.created_at",
	).
		From(tableActivities + " a").
		LeftJoin(tableUsers + " u ON u.id = a.user_id")
	if userID != nil {
		q = q.Where(squirrel.Eq{"a.user_id": *userID})
	}
	return q.OrderBy("a.created_at DESC", "a.id DESC").Limit(uint64(limit))
}

// RecentActivities returns up to limit activities, newest first.
func (r *BotRepo) RecentActivities(ctx context.Context, userID *int64, limit int) ([]activity.TimelineEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	query, args, err := r.recentActivitiesQuery(userID, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent activities query: %w", err)
	}
	var rows []activity.TimelineEntry
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query, args...); err != nil {
		return nil, apperror.NewDatabase("recent bot activities", err)
	}
	return rows, nil
}

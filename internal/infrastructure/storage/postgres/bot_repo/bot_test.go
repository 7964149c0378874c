package bot_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agroledger/internal/domain/activity"
)

func TestUserColumns(t *testing.T) {
	assert.Equal(t, []string{"id", "telegram_id", "full_name", "is_active", "created_at"}, userColumns)
}

func TestInsertUserQuery_NewUsersAreInactive(t *testing.T) {
	repo := NewBotRepo(nil)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	sql, args, err := repo.insertUserQuery(555, "Aliyev", at).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO query_botuser (telegram_id,full_name,is_active,created_at) VALUES ($1,$2,$3,$4)"+
		" ON CONFLICT (telegram_id) DO NOTHING RETURNING id, telegram_id, full_name, is_active, created_at", sql)
	assert.Equal(t, []any{int64(555), "Aliyev", false, at}, args)
}

func TestInsertActivityQuery(t *testing.T) {
	repo := NewBotRepo(nil)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	sql, args, err := repo.insertActivityQuery(&activity.Activity{
		UserID:        3,
		ActionType:    activity.ActionCallback,
		ActionName:    "menu",
		ActionPayload: "open",
		IsAllowed:     true,
		CreatedAt:     at,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO query_botuseractivity (user_id,action_type,action_name,action_payload,is_allowed,created_at)"+
		" VALUES ($1,$2,$3,$4,$5,$6) RETURNING id", sql)
	assert.Equal(t, []any{int64(3), "callback", "menu", "open", true, at}, args)
}

func TestUserSummariesQuery(t *testing.T) {
	repo := NewBotRepo(nil)

	tests := []struct {
		name      string
		userID    *int64
		wantWhere bool
	}{
		{name: "all users", userID: nil, wantWhere: false},
		{name: "single user", userID: ptr(int64(2)), wantWhere: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := repo.userSummariesQuery(tt.userID).ToSql()
			require.NoError(t, err)

			assert.Contains(t, sql, "MIN(a.created_at) AS first_activity, MAX(a.created_at) AS last_activity, COUNT(a.id) AS actions_count")
			assert.Contains(t, sql, "GROUP BY a.user_id, u.full_name, u.telegram_id ORDER BY u.full_name, a.user_id")
			if tt.wantWhere {
				assert.Contains(t, sql, "WHERE a.user_id = $1")
				assert.Equal(t, []any{int64(2)}, args)
			} else {
				assert.NotContains(t, sql, "WHERE")
				assert.Empty(t, args)
			}
		})
	}
}

func TestRecentActivitiesQuery_NewestFirstWithLimit(t *testing.T) {
	repo := NewBotRepo(nil)

	sql, _, err := repo.recentActivitiesQuery(nil, 500).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY a.created_at DESC, a.id DESC LIMIT 500")
}

func ptr[T any](v T) *T { return &v }

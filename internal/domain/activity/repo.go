package activity

import "context"

// Repository defines bot user and activity persistence.
type Repository interface {
	// FindUserByTelegramID returns apperror NotFound when no user exists.
	FindUserByTelegramID(ctx context.Context, telegramID int64) (*User, error)

	// GetOrCreateUser returns the user for telegramID, creating an inactive
	// one named fullName when missing. created reports which happened.
	GetOrCreateUser(ctx context.Context, telegramID int64, fullName string) (user *User, created bool, err error)

	// RenameUser updates the stored display name.
	RenameUser(ctx context.Context, userID int64, fullName string) error

	// CreateActivity appends one activity row and fills its ID.
	CreateActivity(ctx context.Context, a *Activity) error

	// UserSummaries groups activities per user. A nil userID means all users.
	UserSummaries(ctx context.Context, userID *int64) ([]UserSummaryRow, error)

	// RecentActivities returns up to limit activities, newest first.
	RecentActivities(ctx context.Context, userID *int64, limit int) ([]TimelineEntry, error)
}

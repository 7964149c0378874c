package dto

import (
	"time"

	"agroledger/internal/domain/activity"
)

// CheckRequest is the bot access check body.
type CheckRequest struct {
	TelegramID FlexibleID `json:"telegram_id"`
	FullName   string     `json:"full_name"`
}

// ToInput converts the request to service input.
func (r CheckRequest) ToInput() activity.CheckInput {
	return activity.CheckInput{TelegramID: r.TelegramID.Int64(), FullName: r.FullName}
}

// CheckResponse answers an access check.
type CheckResponse struct {
	Allowed bool `json:"allowed"`
	Created bool `json:"created"`
}

// LogActivityRequest is the bot activity log body.
// IsAllowed accepts booleans, numbers and truthy strings.
type LogActivityRequest struct {
	TelegramID    FlexibleID `json:"telegram_id"`
	ActionType    string     `json:"action_type"`
	ActionName    string     `json:"action_name"`
	ActionPayload string     `json:"action_payload"`
	IsAllowed     any        `json:"is_allowed"`
}

// ToInput converts the request to service input.
func (r LogActivityRequest) ToInput() activity.LogInput {
	return activity.LogInput{
		TelegramID:    r.TelegramID.Int64(),
		ActionType:    r.ActionType,
		ActionName:    r.ActionName,
		ActionPayload: r.ActionPayload,
		IsAllowed:     activity.ParseAllowed(r.IsAllowed),
	}
}

// CreatedResponse reports whether a write happened.
type CreatedResponse struct {
	Created bool `json:"created"`
}

// AnalyticsRequest narrows analytics to one user.
type AnalyticsRequest struct {
	UserID string `form:"user_id"`
}

// UserSummaryResponse is one user's activity span.
type UserSummaryResponse struct {
	UserID        int64      `json:"user_id"`
	FullName      string     `json:"full_name"`
	TelegramID    *int64     `json:"telegram_id"`
	FirstActivity *time.Time `json:"first_activity"`
	LastActivity  *time.Time `json:"last_activity"`
	ActionsCount  int64      `json:"actions_count"`
	ActiveSeconds int64      `json:"active_seconds"`
}

// TimelineEntryResponse is one logged event.
type TimelineEntryResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	FullName      string    `json:"full_name"`
	TelegramID    *int64    `json:"telegram_id"`
	ActionType    string    `json:"action_type"`
	ActionName    string    `json:"action_name"`
	ActionPayload string    `json:"action_payload"`
	IsAllowed     bool      `json:"is_allowed"`
	CreatedAt     time.Time `json:"created_at"`
}

// HourBucketResponse counts timeline events in one hour of the day.
type HourBucketResponse struct {
	Hour         int `json:"hour"`
	ActionsCount int `json:"actions_count"`
}

// AnalyticsResponse is the activity report.
type AnalyticsResponse struct {
	Users    []UserSummaryResponse   `json:"users"`
	Timeline []TimelineEntryResponse `json:"timeline"`
	ByHour   []HourBucketResponse    `json:"by_hour"`
}

// FromAnalytics converts the activity report to response DTO.
func FromAnalytics(a *activity.Analytics) AnalyticsResponse {
	resp := AnalyticsResponse{
		Users:    make([]UserSummaryResponse, len(a.Users)),
		Timeline: make([]TimelineEntryResponse, len(a.Timeline)),
		ByHour:   make([]HourBucketResponse, len(a.ByHour)),
	}
	for i, u := range a.Users {
		resp.Users[i] = UserSummaryResponse{
			UserID:        u.UserID,
			FullName:      u.FullName,
			TelegramID:    u.TelegramID,
			FirstActivity: u.FirstActivity,
			LastActivity:  u.LastActivity,
			ActionsCount:  u.ActionsCount,
			ActiveSeconds: u.ActiveSeconds,
		}
	}
	for i, e := range a.Timeline {
		name := "-"
		if e.FullName != nil {
			name = *e.FullName
		}
		resp.Timeline[i] = TimelineEntryResponse{
			ID:            e.ID,
			UserID:        e.UserID,
			FullName:      name,
			TelegramID:    e.TelegramID,
			ActionType:    string(e.ActionType),
			ActionName:    e.ActionName,
			ActionPayload: e.ActionPayload,
			IsAllowed:     e.IsAllowed,
			CreatedAt:     e.CreatedAt,
		}
	}
	for i, b := range a.ByHour {
		resp.ByHour[i] = HourBucketResponse{Hour: b.Hour, ActionsCount: b.ActionsCount}
	}
	return resp
}

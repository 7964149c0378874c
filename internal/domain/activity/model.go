// Package activity implements the chat-bot access gate, the activity log and
// the usage analytics built from it.
package activity

import (
	"strings"
	"time"
	"unicode/utf8"
)

// ActionType classifies a logged bot event.
type ActionType string

const (
	ActionMessage  ActionType = "message"
	ActionCallback ActionType = "callback"
	ActionSystem   ActionType = "system"
)

// ParseActionType maps a raw kind to a known one; empty or unknown is a message.
func ParseActionType(raw string) ActionType {
	switch t := ActionType(strings.ToLower(strings.TrimSpace(raw))); t {
	case ActionMessage, ActionCallback, ActionSystem:
		return t
	default:
		return ActionMessage
	}
}

const (
	MaxActionNameLength = 100
	MaxPayloadLength    = 1000

	DefaultActionName = "unknown"

	AccessCheckAction  = "access_check"
	AccessCheckPayload = "/start access validation"

	HoursPerDay = 24
)

// User is a chat-bot user keyed by its external (Telegram) id.
type User struct {
	ID         int64     `db:"id"`
	TelegramID int64     `db:"telegram_id"`
	FullName   string    `db:"full_name"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
}

// Activity is one appended log row.
type Activity struct {
	ID            int64      `db:"id"`
	UserID        int64      `db:"user_id"`
	ActionType    ActionType `db:"action_type"`
	ActionName    string     `db:"action_name"`
	ActionPayload string     `db:"action_payload"`
	IsAllowed     bool       `db:"is_allowed"`
	CreatedAt     time.Time  `db:"created_at"`
}

// Truncate keeps at most limit characters of s.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

var truthy = map[string]struct{}{
	"1":    {},
	"true": {},
	"yes":  {},
	"y":    {},
}

// ParseAllowed interprets the is_allowed flag of a logging request.
// Booleans pass through, strings are true only for 1/true/yes/y (any case),
// numbers are true when non-zero. Absent or unreadable values are true.
func ParseAllowed(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case bool:
		return v
	case string:
		_, ok := truthy[strings.ToLower(strings.TrimSpace(v))]
		return ok
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	default:
		return true
	}
}

// --- Analytics ---

// UserSummaryRow is the per-user aggregate as read from the store.
type UserSummaryRow struct {
	UserID        int64      `db:"user_id"`
	FullName      *string    `db:"full_name"`
	TelegramID    *int64     `db:"telegram_id"`
	FirstActivity *time.Time `db:"first_activity"`
	LastActivity  *time.Time `db:"last_activity"`
	ActionsCount  int64      `db:"actions_count"`
}

// UserSummary is one user's activity span.
type UserSummary struct {
	UserID        int64
	FullName      string
	TelegramID    *int64
	FirstActivity *time.Time
	LastActivity  *time.Time
	ActionsCount  int64
	ActiveSeconds int64
}

// TimelineEntry is one activity with its user resolved.
type TimelineEntry struct {
	ID            int64      `db:"id"`
	UserID        int64      `db:"user_id"`
	FullName      *string    `db:"full_name"`
	TelegramID    *int64     `db:"telegram_id"`
	ActionType    ActionType `db:"action_type"`
	ActionName    string     `db:"action_name"`
	ActionPayload string     `db:"action_payload"`
	IsAllowed     bool       `db:"is_allowed"`
	CreatedAt     time.Time  `db:"created_at"`
}

// HourBucket counts timeline events in one hour of the day.
type HourBucket struct {
	Hour         int
	ActionsCount int
}

// Analytics is the activity report.
type Analytics struct {
	Users    []UserSummary
	Timeline []TimelineEntry
	ByHour   []HourBucket
}

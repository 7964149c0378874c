package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"agroledger/internal/core/apperror"
	"agroledger/internal/domain/activity"
)

func (s *Store) findUser(telegramID int64) (int, bool) {
	for i, u := range s.state.BotUsers {
		if u.TelegramID == telegramID {
			return i, true
		}
	}
	return 0, false
}

// FindUserByTelegramID implements activity.Repository.
func (s *Store) FindUserByTelegramID(_ context.Context, telegramID int64) (*activity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.findUser(telegramID)
	if !ok {
		return nil, apperror.NewNotFound("bot user", telegramID)
	}
	u := s.state.BotUsers[i]
	return &u, nil
}

// GetOrCreateUser implements activity.Repository.
func (s *Store) GetOrCreateUser(_ context.Context, telegramID int64, fullName string) (*activity.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.findUser(telegramID); ok {
		u := s.state.BotUsers[i]
		return &u, false, nil
	}

	s.nextUserID++
	u := activity.User{
		ID:         s.nextUserID,
		TelegramID: telegramID,
		FullName:   fullName,
		IsActive:   false,
		CreatedAt:  time.Now().UTC(),
	}
	s.state.BotUsers = append(s.state.BotUsers, u)
	return &u, true, nil
}

// RenameUser implements activity.Repository.
func (s *Store) RenameUser(_ context.Context, userID int64, fullName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.BotUsers {
		if s.state.BotUsers[i].ID == userID {
			s.state.BotUsers[i].FullName = fullName
			return nil
		}
	}
	return apperror.NewNotFound("bot user", userID)
}

// CreateActivity implements activity.Repository.
func (s *Store) CreateActivity(_ context.Context, a *activity.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextActivityID++
	a.ID = s.nextActivityID
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	s.state.Activities = append(s.state.Activities, *a)
	return nil
}

func matchUser(userID *int64, a activity.Activity) bool {
	return userID == nil || a.UserID == *userID
}

// UserSummaries implements activity.Repository.
func (s *Store) UserSummaries(_ context.Context, userID *int64) ([]activity.UserSummaryRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.buildIndex()
	byUser := make(map[int64]*activity.UserSummaryRow)
	var order []int64
	for _, a := range s.state.Activities {
		if !matchUser(userID, a) {
			continue
		}
		row, ok := byUser[a.UserID]
		if !ok {
			row = &activity.UserSummaryRow{UserID: a.UserID}
			if u, found := idx.users[a.UserID]; found {
				row.FullName = &u.FullName
				row.TelegramID = &u.TelegramID
			}
			byUser[a.UserID] = row
			order = append(order, a.UserID)
		}
		at := a.CreatedAt
		if row.FirstActivity == nil || at.Before(*row.FirstActivity) {
			row.FirstActivity = &at
		}
		if row.LastActivity == nil || at.After(*row.LastActivity) {
			row.LastActivity = &at
		}
		row.ActionsCount++
	}

	out := make([]activity.UserSummaryRow, 0, len(order))
	for _, id := range order {
		out = append(out, *byUser[id])
	}
	return out, nil
}

// RecentActivities implements activity.Repository.
func (s *Store) RecentActivities(_ context.Context, userID *int64, limit int) ([]activity.TimelineEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.buildIndex()
	out := make([]activity.TimelineEntry, 0)
	for _, a := range s.state.Activities {
		if !matchUser(userID, a) {
			continue
		}
		e := activity.TimelineEntry{
			ID:            a.ID,
			UserID:        a.UserID,
			ActionType:    a.ActionType,
			ActionName:    a.ActionName,
			ActionPayload: a.ActionPayload,
			IsAllowed:     a.IsAllowed,
			CreatedAt:     a.CreatedAt,
		}
		if u, ok := idx.users[a.UserID]; ok {
			e.FullName = &u.FullName
			e.TelegramID = &u.TelegramID
		}
		out = append(out, e)
	}

	slices.SortFunc(out, func(a, b activity.TimelineEntry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

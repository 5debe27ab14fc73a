package service

import (
	"context"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

type Notifications struct {
	collection[domain.Notification]
}

// Add creates a notification; the read flag always starts false regardless
// of caller input.
func (s *Notifications) Add(ctx context.Context, n *domain.Notification) (string, error) {
	n.Read = false
	return s.add(ctx, n)
}

func (s *Notifications) MarkAsRead(ctx context.Context, id string) error {
	return s.update(ctx, id, map[string]any{"read": true})
}

func (s *Notifications) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *Notifications) Get(ctx context.Context, id string) (*domain.Notification, error) {
	return s.get(ctx, id)
}

// GetForUser lists a user's notifications newest first, unread only unless
// includeRead is set.
func (s *Notifications) GetForUser(ctx context.Context, userID string, includeRead bool) ([]domain.Notification, error) {
	filters := []store.Filter{store.Where("userId", store.OpEqual, userID)}
	if !includeRead {
		filters = append(filters, store.Where("read", store.OpEqual, false))
	}
	return s.query(ctx, store.Query{
		Filters:    filters,
		OrderBy:    "createdAt",
		Descending: true,
	})
}

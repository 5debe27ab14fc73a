package state

import (
	"context"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/service"
)

type NotificationStore struct {
	observable[domain.Notification]
	svc *service.Notifications
}

func NewNotificationStore(svc *service.Notifications) *NotificationStore {
	return &NotificationStore{svc: svc}
}

func (s *NotificationStore) LoadForUser(ctx context.Context, userID string, includeRead bool) {
	s.setLoading()
	notifications, err := s.svc.GetForUser(ctx, userID, includeRead)
	if err != nil {
		s.fail("Failed to load notifications")
		return
	}
	s.setItems(notifications)
}

func (s *NotificationStore) MarkAsRead(ctx context.Context, id string) error {
	if err := s.svc.MarkAsRead(ctx, id); err != nil {
		s.fail("Failed to update notification")
		return err
	}
	s.mutate(func(snap *Snapshot[domain.Notification]) {
		for i := range snap.Items {
			if snap.Items[i].ID == id {
				snap.Items[i].Read = true
			}
		}
	})
	return nil
}

func (s *NotificationStore) Delete(ctx context.Context, id string) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		s.fail("Failed to delete notification")
		return err
	}
	s.mutate(func(snap *Snapshot[domain.Notification]) {
		items := snap.Items[:0:0]
		for _, n := range snap.Items {
			if n.ID != id {
				items = append(items, n)
			}
		}
		snap.Items = items
	})
	return nil
}

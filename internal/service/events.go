package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

type Events struct {
	collection[domain.Event]

	performers *Performers
}

func (s *Events) Add(ctx context.Context, event *domain.Event) (string, error) {
	return s.add(ctx, event)
}

func (s *Events) Update(ctx context.Context, id string, patch map[string]any) error {
	return s.update(ctx, id, patch)
}

func (s *Events) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *Events) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.get(ctx, id)
}

func (s *Events) GetAll(ctx context.Context) ([]domain.Event, error) {
	return s.list(ctx)
}

func (s *Events) GetUpcoming(ctx context.Context, limit int) ([]domain.Event, error) {
	return s.query(ctx, store.Query{
		Filters: []store.Filter{store.Where("date", store.OpGreaterEq, time.Now())},
		OrderBy: "date",
		Limit:   limit,
	})
}

func (s *Events) GetByStatus(ctx context.Context, status domain.EventStatus) ([]domain.Event, error) {
	return s.query(ctx, store.Query{
		Filters: []store.Filter{store.Where("status", store.OpEqual, string(status))},
		OrderBy: "date",
	})
}

func (s *Events) GetByClient(ctx context.Context, clientID string) ([]domain.Event, error) {
	return s.query(ctx, store.Query{
		Filters:    []store.Filter{store.Where("client", store.OpEqual, clientID)},
		OrderBy:    "date",
		Descending: true,
	})
}

// GetByPerformer scans the collection: assignments are objects, so the
// membership test cannot be pushed down.
func (s *Events) GetByPerformer(ctx context.Context, performerID string) ([]domain.Event, error) {
	events, err := s.query(ctx, store.Query{OrderBy: "date", Descending: true})
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Event, 0, len(events))
	for _, e := range events {
		for _, a := range e.Performers {
			if a.Performer == performerID {
				matched = append(matched, e)
				break
			}
		}
	}
	return matched, nil
}

func (s *Events) GetInDateRange(ctx context.Context, start, end time.Time) ([]domain.Event, error) {
	return s.query(ctx, store.Query{
		Filters: []store.Filter{
			store.Where("date", store.OpGreaterEq, start),
			store.Where("date", store.OpLessEq, end),
		},
		OrderBy: "date",
	})
}

// ResolvePerformers joins the event's assignments against performer records,
// preserving assignment order. A reference that no longer resolves degrades
// to a placeholder rather than failing the whole lookup.
func (s *Events) ResolvePerformers(ctx context.Context, event *domain.Event) ([]domain.Performer, error) {
	resolved := make([]domain.Performer, 0, len(event.Performers))
	for _, a := range event.Performers {
		performer, err := s.performers.Get(ctx, a.Performer)
		if err != nil {
			slog.Error("failed to resolve event performer", "event", event.ID, "performer", a.Performer, "error", err)
			performer = nil
		}
		if performer == nil {
			performer = &domain.Performer{ID: a.Performer, Name: domain.UnknownPerformerName}
		}
		resolved = append(resolved, *performer)
	}
	return resolved, nil
}

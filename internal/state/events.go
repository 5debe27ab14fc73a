package state

import (
	"context"
	"errors"
	"sync"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/service"
)

// EventSnapshot extends the usual store shape with the resolved performers
// of the selected event.
type EventSnapshot struct {
	Events          []domain.Event
	Selected        *domain.Event
	EventPerformers []domain.Performer
	Loading         bool
	Error           string
}

// EventStore composes events with performer data: whenever the selected
// event (or its assignments) changes, the performer join is refreshed.
type EventStore struct {
	svc *service.Events

	mu        sync.Mutex
	snap      EventSnapshot
	listeners map[int]func(EventSnapshot)
	nextID    int
}

func NewEventStore(svc *service.Events) *EventStore {
	return &EventStore{svc: svc}
}

func (s *EventStore) Snapshot() EventSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *EventStore) Subscribe(fn func(EventSnapshot)) (cancel func()) {
	s.mu.Lock()
	if s.listeners == nil {
		s.listeners = make(map[int]func(EventSnapshot))
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.snap
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *EventStore) mutate(fn func(*EventSnapshot)) {
	s.mu.Lock()
	snap := s.snap
	fn(&snap)
	s.snap = snap
	listeners := make([]func(EventSnapshot), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (s *EventStore) setLoading() {
	s.mutate(func(snap *EventSnapshot) {
		snap.Loading = true
		snap.Error = ""
	})
}

func (s *EventStore) setEvents(events []domain.Event) {
	s.mutate(func(snap *EventSnapshot) {
		snap.Events = events
		snap.Loading = false
	})
}

func (s *EventStore) fail(msg string) {
	s.mutate(func(snap *EventSnapshot) {
		snap.Loading = false
		snap.Error = msg
	})
}

func (s *EventStore) Load(ctx context.Context) {
	s.setLoading()
	events, err := s.svc.GetAll(ctx)
	if err != nil {
		s.fail("Failed to load events")
		return
	}
	s.setEvents(events)
}

// LoadOne selects an event and resolves its performer assignments.
func (s *EventStore) LoadOne(ctx context.Context, id string) {
	s.mutate(func(snap *EventSnapshot) {
		snap.Loading = true
		snap.Error = ""
		snap.Selected = nil
		snap.EventPerformers = nil
	})

	event, err := s.svc.Get(ctx, id)
	if err != nil {
		s.fail("Failed to load event")
		return
	}
	if event == nil {
		s.fail("Event not found")
		return
	}
	performers, err := s.svc.ResolvePerformers(ctx, event)
	if err != nil {
		s.fail("Failed to load event performers")
		return
	}
	s.mutate(func(snap *EventSnapshot) {
		snap.Selected = event
		snap.EventPerformers = performers
		snap.Loading = false
	})
}

// LoadPerformers refreshes the performer join for the selected event, or for
// the given event if a different one is selected.
func (s *EventStore) LoadPerformers(ctx context.Context, eventID string) {
	s.setLoading()

	s.mu.Lock()
	event := s.snap.Selected
	s.mu.Unlock()

	if event == nil || event.ID != eventID {
		loaded, err := s.svc.Get(ctx, eventID)
		if err != nil || loaded == nil {
			s.fail("Failed to load event performers")
			return
		}
		event = loaded
	}

	performers, err := s.svc.ResolvePerformers(ctx, event)
	if err != nil {
		s.fail("Failed to load event performers")
		return
	}
	s.mutate(func(snap *EventSnapshot) {
		snap.EventPerformers = performers
		snap.Loading = false
	})
}

func (s *EventStore) Add(ctx context.Context, event *domain.Event) (string, error) {
	s.setLoading()
	id, err := s.svc.Add(ctx, event)
	if err != nil {
		s.fail("Failed to add event")
		return "", err
	}
	added, err := s.svc.Get(ctx, id)
	if err != nil || added == nil {
		s.fail("Failed to add event")
		if err == nil {
			err = errors.New("added event not found")
		}
		return "", err
	}
	performers, err := s.svc.ResolvePerformers(ctx, added)
	if err != nil {
		s.fail("Failed to add event")
		return "", err
	}
	s.mutate(func(snap *EventSnapshot) {
		snap.Events = append(snap.Events, *added)
		snap.Selected = added
		snap.EventPerformers = performers
		snap.Loading = false
	})
	return id, nil
}

func (s *EventStore) Update(ctx context.Context, id string, patch map[string]any) error {
	s.setLoading()
	if err := s.svc.Update(ctx, id, patch); err != nil {
		s.fail("Failed to update event")
		return err
	}
	updated, err := s.svc.Get(ctx, id)
	if err != nil || updated == nil {
		s.fail("Failed to update event")
		if err == nil {
			err = errors.New("updated event not found")
		}
		return err
	}

	s.mu.Lock()
	selected := s.snap.Selected != nil && s.snap.Selected.ID == id
	s.mu.Unlock()

	var performers []domain.Performer
	if selected {
		if performers, err = s.svc.ResolvePerformers(ctx, updated); err != nil {
			s.fail("Failed to update event")
			return err
		}
	}

	s.mutate(func(snap *EventSnapshot) {
		for i := range snap.Events {
			if snap.Events[i].ID == id {
				snap.Events[i] = *updated
			}
		}
		if snap.Selected != nil && snap.Selected.ID == id {
			snap.Selected = updated
			snap.EventPerformers = performers
		}
		snap.Loading = false
	})
	return nil
}

func (s *EventStore) Delete(ctx context.Context, id string) error {
	s.setLoading()
	if err := s.svc.Delete(ctx, id); err != nil {
		s.fail("Failed to delete event")
		return err
	}
	s.mutate(func(snap *EventSnapshot) {
		events := snap.Events[:0:0]
		for _, e := range snap.Events {
			if e.ID != id {
				events = append(events, e)
			}
		}
		snap.Events = events
		if snap.Selected != nil && snap.Selected.ID == id {
			snap.Selected = nil
			snap.EventPerformers = nil
		}
		snap.Loading = false
	})
	return nil
}

func (s *EventStore) LoadUpcoming(ctx context.Context, limit int) {
	s.setLoading()
	events, err := s.svc.GetUpcoming(ctx, limit)
	if err != nil {
		s.fail("Failed to load upcoming events")
		return
	}
	s.setEvents(events)
}

func (s *EventStore) LoadByStatus(ctx context.Context, status domain.EventStatus) {
	s.setLoading()
	events, err := s.svc.GetByStatus(ctx, status)
	if err != nil {
		s.fail("Failed to load events")
		return
	}
	s.setEvents(events)
}

func (s *EventStore) LoadByClient(ctx context.Context, clientID string) {
	s.setLoading()
	events, err := s.svc.GetByClient(ctx, clientID)
	if err != nil {
		s.fail("Failed to load client events")
		return
	}
	s.setEvents(events)
}

func (s *EventStore) LoadByPerformer(ctx context.Context, performerID string) {
	s.setLoading()
	events, err := s.svc.GetByPerformer(ctx, performerID)
	if err != nil {
		s.fail("Failed to load performer events")
		return
	}
	s.setEvents(events)
}

func (s *EventStore) ClearSelected() {
	s.mutate(func(snap *EventSnapshot) {
		snap.Selected = nil
		snap.EventPerformers = nil
	})
}

func (s *EventStore) ClearError() {
	s.mutate(func(snap *EventSnapshot) {
		snap.Error = ""
	})
}

package state

import (
	"context"
	"errors"
	"time"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/service"
)

type PerformerStore struct {
	observable[domain.Performer]
	svc *service.Performers
}

func NewPerformerStore(svc *service.Performers) *PerformerStore {
	return &PerformerStore{svc: svc}
}

func (s *PerformerStore) Load(ctx context.Context) {
	s.setLoading()
	performers, err := s.svc.GetAll(ctx)
	if err != nil {
		s.fail("Failed to load performers")
		return
	}
	s.setItems(performers)
}

func (s *PerformerStore) LoadOne(ctx context.Context, id string) {
	s.setLoading()
	performer, err := s.svc.Get(ctx, id)
	if err != nil {
		s.fail("Failed to load performer")
		return
	}
	if performer == nil {
		s.fail("Performer not found")
		return
	}
	s.mutate(func(snap *Snapshot[domain.Performer]) {
		snap.Selected = performer
		snap.Loading = false
	})
}

func (s *PerformerStore) Add(ctx context.Context, performer *domain.Performer) (string, error) {
	s.setLoading()
	id, err := s.svc.Add(ctx, performer)
	if err != nil {
		s.fail("Failed to add performer")
		return "", err
	}
	added, err := s.svc.Get(ctx, id)
	if err != nil || added == nil {
		s.fail("Failed to add performer")
		if err == nil {
			err = errors.New("added performer not found")
		}
		return "", err
	}
	s.mutate(func(snap *Snapshot[domain.Performer]) {
		snap.Items = append(snap.Items, *added)
		snap.Selected = added
		snap.Loading = false
	})
	return id, nil
}

func (s *PerformerStore) Update(ctx context.Context, id string, patch map[string]any) error {
	s.setLoading()
	if err := s.svc.Update(ctx, id, patch); err != nil {
		s.fail("Failed to update performer")
		return err
	}
	return s.refresh(ctx, id)
}

// UpdateAvailability upserts the availability entry for the entry's day and
// refreshes the performer in state.
func (s *PerformerStore) UpdateAvailability(ctx context.Context, id string, entry domain.Availability) error {
	s.setLoading()
	if err := s.svc.UpdateAvailability(ctx, id, entry); err != nil {
		s.fail("Failed to update availability")
		return err
	}
	return s.refresh(ctx, id)
}

func (s *PerformerStore) refresh(ctx context.Context, id string) error {
	updated, err := s.svc.Get(ctx, id)
	if err != nil || updated == nil {
		s.fail("Failed to update performer")
		if err == nil {
			err = errors.New("updated performer not found")
		}
		return err
	}
	s.mutate(func(snap *Snapshot[domain.Performer]) {
		for i := range snap.Items {
			if snap.Items[i].ID == id {
				snap.Items[i] = *updated
			}
		}
		if snap.Selected != nil && snap.Selected.ID == id {
			snap.Selected = updated
		}
		snap.Loading = false
	})
	return nil
}

func (s *PerformerStore) Delete(ctx context.Context, id string) error {
	s.setLoading()
	if err := s.svc.Delete(ctx, id); err != nil {
		s.fail("Failed to delete performer")
		return err
	}
	s.mutate(func(snap *Snapshot[domain.Performer]) {
		items := snap.Items[:0:0]
		for _, p := range snap.Items {
			if p.ID != id {
				items = append(items, p)
			}
		}
		snap.Items = items
		if snap.Selected != nil && snap.Selected.ID == id {
			snap.Selected = nil
		}
		snap.Loading = false
	})
	return nil
}

func (s *PerformerStore) LoadBySkill(ctx context.Context, category domain.SkillCategory) {
	s.setLoading()
	performers, err := s.svc.GetBySkill(ctx, category)
	if err != nil {
		s.fail("Failed to load performers")
		return
	}
	s.setItems(performers)
}

func (s *PerformerStore) LoadAvailableForDate(ctx context.Context, date time.Time) {
	s.setLoading()
	performers, err := s.svc.GetAvailableForDate(ctx, date)
	if err != nil {
		s.fail("Failed to load performers")
		return
	}
	s.setItems(performers)
}

package service

import (
	"context"
	"sort"

	"time"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

type Performers struct {
	collection[domain.Performer]
}

func (s *Performers) Add(ctx context.Context, performer *domain.Performer) (string, error) {
	return s.add(ctx, performer)
}

func (s *Performers) Update(ctx context.Context, id string, patch map[string]any) error {
	return s.update(ctx, id, patch)
}

func (s *Performers) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *Performers) Get(ctx context.Context, id string) (*domain.Performer, error) {
	return s.get(ctx, id)
}

func (s *Performers) GetAll(ctx context.Context) ([]domain.Performer, error) {
	return s.list(ctx)
}

// GetBySkill filters on skill category. Skills are objects, so the predicate
// cannot be pushed down as array containment; this scans the collection.
func (s *Performers) GetBySkill(ctx context.Context, category domain.SkillCategory) ([]domain.Performer, error) {
	performers, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Performer, 0, len(performers))
	for _, p := range performers {
		for _, skill := range p.Skills {
			if skill.Category == category {
				matched = append(matched, p)
				break
			}
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

// GetAvailableForDate returns performers bookable on the given day: either
// no availability entry covers the day, or the entry is marked available.
func (s *Performers) GetAvailableForDate(ctx context.Context, date time.Time) ([]domain.Performer, error) {
	performers, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]domain.Performer, 0, len(performers))
	for _, p := range performers {
		entry, ok := p.AvailabilityOn(date)
		if !ok || entry.Status == domain.AvailabilityAvailable {
			available = append(available, p)
		}
	}
	return available, nil
}

// UpdateAvailability upserts the entry for the entry's calendar day: an
// existing entry for that day is replaced in place, otherwise the entry is
// appended.
func (s *Performers) UpdateAvailability(ctx context.Context, id string, entry domain.Availability) error {
	performer, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if performer == nil {
		return store.ErrNotFound
	}

	entries := performer.Availability
	replaced := false
	for i, a := range entries {
		if sameDay(a.Date, entry.Date) {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	return s.update(ctx, id, map[string]any{"availability": entries})
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

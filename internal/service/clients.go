package service

import (
	"context"
	"strings"
	"time"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

type Clients struct {
	collection[domain.Client]
}

func (s *Clients) Add(ctx context.Context, client *domain.Client) (string, error) {
	return s.add(ctx, client)
}

func (s *Clients) Update(ctx context.Context, id string, patch map[string]any) error {
	return s.update(ctx, id, patch)
}

func (s *Clients) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *Clients) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.get(ctx, id)
}

func (s *Clients) GetAll(ctx context.Context) ([]domain.Client, error) {
	return s.list(ctx)
}

func (s *Clients) GetByStatus(ctx context.Context, status domain.ClientStatus) ([]domain.Client, error) {
	return s.query(ctx, store.Query{
		Filters: []store.Filter{store.Where("status", store.OpEqual, string(status))},
		OrderBy: "name",
	})
}

// GetForFollowUp returns clients whose next follow-up falls within the given
// number of days from now.
func (s *Clients) GetForFollowUp(ctx context.Context, days int) ([]domain.Client, error) {
	now := time.Now()
	return s.query(ctx, store.Query{
		Filters: []store.Filter{
			store.Where("nextFollowUp.date", store.OpGreaterEq, now),
			store.Where("nextFollowUp.date", store.OpLessEq, now.AddDate(0, 0, days)),
		},
	})
}

// Search does a substring match over name, contact person and email. The
// store cannot express this natively, so it scans the collection.
func (s *Clients) Search(ctx context.Context, term string) ([]domain.Client, error) {
	clients, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(term)
	matched := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.ContactPerson), term) ||
			strings.Contains(strings.ToLower(c.Email), term) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

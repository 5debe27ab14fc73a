package service

import (
	"context"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

type Agents struct {
	collection[domain.Agent]
}

func (s *Agents) Add(ctx context.Context, agent *domain.Agent) (string, error) {
	return s.add(ctx, agent)
}

func (s *Agents) Update(ctx context.Context, id string, patch map[string]any) error {
	return s.update(ctx, id, patch)
}

func (s *Agents) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *Agents) Get(ctx context.Context, id string) (*domain.Agent, error) {
	return s.get(ctx, id)
}

func (s *Agents) GetAll(ctx context.Context) ([]domain.Agent, error) {
	return s.list(ctx)
}

func (s *Agents) GetBySpecialization(ctx context.Context, specialization string) ([]domain.Agent, error) {
	return s.query(ctx, store.Query{
		Filters: []store.Filter{store.Where("specialization", store.OpContains, specialization)},
		OrderBy: "name",
	})
}

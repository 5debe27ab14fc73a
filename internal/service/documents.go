package service

import (
	"context"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

type Documents struct {
	collection[domain.Document]
}

func (s *Documents) Add(ctx context.Context, doc *domain.Document) (string, error) {
	return s.add(ctx, doc)
}

func (s *Documents) Update(ctx context.Context, id string, patch map[string]any) error {
	return s.update(ctx, id, patch)
}

func (s *Documents) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *Documents) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.get(ctx, id)
}

func (s *Documents) GetAll(ctx context.Context) ([]domain.Document, error) {
	return s.list(ctx)
}

func (s *Documents) GetByRelatedEntity(ctx context.Context, entityType domain.EntityType, entityID string) ([]domain.Document, error) {
	return s.query(ctx, store.Query{
		Filters: []store.Filter{
			store.Where("relatedTo.type", store.OpEqual, string(entityType)),
			store.Where("relatedTo.id", store.OpEqual, entityID),
		},
		OrderBy:    "createdAt",
		Descending: true,
	})
}

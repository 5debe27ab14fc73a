package service

import (
	"context"
	"time"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

type Tasks struct {
	collection[domain.Task]
}

func (s *Tasks) Add(ctx context.Context, task *domain.Task) (string, error) {
	return s.add(ctx, task)
}

func (s *Tasks) Update(ctx context.Context, id string, patch map[string]any) error {
	return s.update(ctx, id, patch)
}

func (s *Tasks) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *Tasks) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.get(ctx, id)
}

func (s *Tasks) GetAll(ctx context.Context) ([]domain.Task, error) {
	return s.list(ctx)
}

func (s *Tasks) GetByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.query(ctx, store.Query{
		Filters: []store.Filter{store.Where("assignedTo", store.OpEqual, userID)},
		OrderBy: "dueDate",
	})
}

// GetUpcoming returns the user's incomplete tasks due within the given
// number of days from now.
func (s *Tasks) GetUpcoming(ctx context.Context, userID string, days int) ([]domain.Task, error) {
	now := time.Now()
	return s.query(ctx, store.Query{
		Filters: []store.Filter{
			store.Where("assignedTo", store.OpEqual, userID),
			store.Where("dueDate", store.OpGreaterEq, now),
			store.Where("dueDate", store.OpLessEq, now.AddDate(0, 0, days)),
			store.Where("completed", store.OpEqual, false),
		},
		OrderBy: "dueDate",
	})
}

package service

import (
	"context"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

// Users manages the application user profiles. Profiles are never hard
// deleted; there is no Delete here on purpose.
type Users struct {
	collection[domain.User]
}

func (s *Users) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.Role == "" {
		user.Role = domain.RoleReadOnly
	}
	return s.add(ctx, user)
}

func (s *Users) Update(ctx context.Context, id string, patch map[string]any) error {
	return s.update(ctx, id, patch)
}

func (s *Users) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.get(ctx, id)
}

func (s *Users) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := s.query(ctx, store.Query{
		Filters: []store.Filter{store.Where("email", store.OpEqual, email)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (s *Users) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.list(ctx)
}

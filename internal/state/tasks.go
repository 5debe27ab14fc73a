package state

import (
	"context"
	"errors"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/service"
)

type TaskStore struct {
	observable[domain.Task]
	svc *service.Tasks
}

func NewTaskStore(svc *service.Tasks) *TaskStore {
	return &TaskStore{svc: svc}
}

func (s *TaskStore) Load(ctx context.Context) {
	s.setLoading()
	tasks, err := s.svc.GetAll(ctx)
	if err != nil {
		s.fail("Failed to load tasks")
		return
	}
	s.setItems(tasks)
}

func (s *TaskStore) LoadByUser(ctx context.Context, userID string) {
	s.setLoading()
	tasks, err := s.svc.GetByUser(ctx, userID)
	if err != nil {
		s.fail("Failed to load tasks")
		return
	}
	s.setItems(tasks)
}

func (s *TaskStore) LoadUpcoming(ctx context.Context, userID string, days int) {
	s.setLoading()
	tasks, err := s.svc.GetUpcoming(ctx, userID, days)
	if err != nil {
		s.fail("Failed to load tasks")
		return
	}
	s.setItems(tasks)
}

func (s *TaskStore) Add(ctx context.Context, task *domain.Task) (string, error) {
	s.setLoading()
	id, err := s.svc.Add(ctx, task)
	if err != nil {
		s.fail("Failed to add task")
		return "", err
	}
	added, err := s.svc.Get(ctx, id)
	if err != nil || added == nil {
		s.fail("Failed to add task")
		if err == nil {
			err = errors.New("added task not found")
		}
		return "", err
	}
	s.mutate(func(snap *Snapshot[domain.Task]) {
		snap.Items = append(snap.Items, *added)
		snap.Loading = false
	})
	return id, nil
}

func (s *TaskStore) Update(ctx context.Context, id string, patch map[string]any) error {
	s.setLoading()
	if err := s.svc.Update(ctx, id, patch); err != nil {
		s.fail("Failed to update task")
		return err
	}
	updated, err := s.svc.Get(ctx, id)
	if err != nil || updated == nil {
		s.fail("Failed to update task")
		if err == nil {
			err = errors.New("updated task not found")
		}
		return err
	}
	s.mutate(func(snap *Snapshot[domain.Task]) {
		for i := range snap.Items {
			if snap.Items[i].ID == id {
				snap.Items[i] = *updated
			}
		}
		snap.Loading = false
	})
	return nil
}

// Complete marks a task done.
func (s *TaskStore) Complete(ctx context.Context, id string) error {
	return s.Update(ctx, id, map[string]any{"completed": true})
}

func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.setLoading()
	if err := s.svc.Delete(ctx, id); err != nil {
		s.fail("Failed to delete task")
		return err
	}
	s.mutate(func(snap *Snapshot[domain.Task]) {
		items := snap.Items[:0:0]
		for _, t := range snap.Items {
			if t.ID != id {
				items = append(items, t)
			}
		}
		snap.Items = items
		snap.Loading = false
	})
	return nil
}

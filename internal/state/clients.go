package state

import (
	"context"
	"errors"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/service"
)

type ClientStore struct {
	observable[domain.Client]
	svc *service.Clients
}

func NewClientStore(svc *service.Clients) *ClientStore {
	return &ClientStore{svc: svc}
}

func (s *ClientStore) Load(ctx context.Context) {
	s.setLoading()
	clients, err := s.svc.GetAll(ctx)
	if err != nil {
		s.fail("Failed to load clients")
		return
	}
	s.setItems(clients)
}

func (s *ClientStore) LoadOne(ctx context.Context, id string) {
	s.setLoading()
	client, err := s.svc.Get(ctx, id)
	if err != nil {
		s.fail("Failed to load client")
		return
	}
	if client == nil {
		s.fail("Client not found")
		return
	}
	s.mutate(func(snap *Snapshot[domain.Client]) {
		snap.Selected = client
		snap.Loading = false
	})
}

func (s *ClientStore) Add(ctx context.Context, client *domain.Client) (string, error) {
	s.setLoading()
	id, err := s.svc.Add(ctx, client)
	if err != nil {
		s.fail("Failed to add client")
		return "", err
	}
	added, err := s.svc.Get(ctx, id)
	if err != nil || added == nil {
		s.fail("Failed to add client")
		if err == nil {
			err = errors.New("added client not found")
		}
		return "", err
	}
	s.mutate(func(snap *Snapshot[domain.Client]) {
		snap.Items = append(snap.Items, *added)
		snap.Selected = added
		snap.Loading = false
	})
	return id, nil
}

func (s *ClientStore) Update(ctx context.Context, id string, patch map[string]any) error {
	s.setLoading()
	if err := s.svc.Update(ctx, id, patch); err != nil {
		s.fail("Failed to update client")
		return err
	}
	updated, err := s.svc.Get(ctx, id)
	if err != nil || updated == nil {
		s.fail("Failed to update client")
		if err == nil {
			err = errors.New("updated client not found")
		}
		return err
	}
	s.mutate(func(snap *Snapshot[domain.Client]) {
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

func (s *ClientStore) Delete(ctx context.Context, id string) error {
	s.setLoading()
	if err := s.svc.Delete(ctx, id); err != nil {
		s.fail("Failed to delete client")
		return err
	}
	s.mutate(func(snap *Snapshot[domain.Client]) {
		items := snap.Items[:0:0]
		for _, c := range snap.Items {
			if c.ID != id {
				items = append(items, c)
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

func (s *ClientStore) LoadByStatus(ctx context.Context, status domain.ClientStatus) {
	s.setLoading()
	clients, err := s.svc.GetByStatus(ctx, status)
	if err != nil {
		s.fail("Failed to load clients")
		return
	}
	s.setItems(clients)
}

func (s *ClientStore) LoadFollowUps(ctx context.Context, days int) {
	s.setLoading()
	clients, err := s.svc.GetForFollowUp(ctx, days)
	if err != nil {
		s.fail("Failed to load clients")
		return
	}
	s.setItems(clients)
}

func (s *ClientStore) Search(ctx context.Context, term string) {
	s.setLoading()
	clients, err := s.svc.Search(ctx, term)
	if err != nil {
		s.fail("Failed to load clients")
		return
	}
	s.setItems(clients)
}

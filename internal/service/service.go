// Package service maps the agency's entities onto the generic document
// store. Every service is the same instantiation: add strips server-assigned
// fields, update merges a partial patch, plus a handful of named queries.
package service

import (
	"context"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

type Service struct {
	Clients       *Clients
	Performers    *Performers
	Events        *Events
	Agents        *Agents
	Tasks         *Tasks
	Notifications *Notifications
	Documents     *Documents
	Users         *Users
}

func New(st store.Store) *Service {
	performers := &Performers{collection[domain.Performer]{st, store.KindPerformers}}
	return &Service{
		Clients:       &Clients{collection[domain.Client]{st, store.KindClients}},
		Performers:    performers,
		Events:        &Events{collection[domain.Event]{st, store.KindEvents}, performers},
		Agents:        &Agents{collection[domain.Agent]{st, store.KindAgents}},
		Tasks:         &Tasks{collection[domain.Task]{st, store.KindTasks}},
		Notifications: &Notifications{collection[domain.Notification]{st, store.KindNotifications}},
		Documents:     &Documents{collection[domain.Document]{st, store.KindDocuments}},
		Users:         &Users{collection[domain.User]{st, store.KindUsers}},
	}
}

// collection implements the uniform CRUD surface shared by every service.
type collection[T any] struct {
	store store.Store
	kind  string
}

func (c collection[T]) add(ctx context.Context, v *T) (string, error) {
	doc, err := store.EncodeDocument(v)
	if err != nil {
		return "", err
	}
	return c.store.Add(ctx, c.kind, doc)
}

// get returns (nil, nil) when no record matches.
func (c collection[T]) get(ctx context.Context, id string) (*T, error) {
	doc, err := c.store.Get(ctx, c.kind, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	v := new(T)
	if err := store.DecodeDocument(doc, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (c collection[T]) update(ctx context.Context, id string, patch map[string]any) error {
	return c.store.Update(ctx, c.kind, id, patch)
}

func (c collection[T]) delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.kind, id)
}

func (c collection[T]) list(ctx context.Context) ([]T, error) {
	docs, err := c.store.List(ctx, c.kind)
	if err != nil {
		return nil, err
	}
	return c.decodeAll(docs)
}

func (c collection[T]) query(ctx context.Context, q store.Query) ([]T, error) {
	docs, err := c.store.Query(ctx, c.kind, q)
	if err != nil {
		return nil, err
	}
	return c.decodeAll(docs)
}

func (c collection[T]) decodeAll(docs []map[string]any) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v := new(T)
		if err := store.DecodeDocument(doc, v); err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

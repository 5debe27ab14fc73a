// Package store is a generic document store. Records are schemaless JSON
// documents grouped by kind, with server-assigned identifiers and
// createdAt/updatedAt stamps. Date values round-trip losslessly through a
// canonical wire encoding (see codec.go).
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Update and Delete when no record matches.
// Get reports a missing record as (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

// StorageError wraps a transport or driver failure.
type StorageError struct {
	Op   string
	Kind string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

type Op string

const (
	OpEqual     Op = "=="
	OpGreaterEq Op = ">="
	OpLessEq    Op = "<="
	// OpContains matches records whose array field contains the given
	// scalar element.
	OpContains Op = "array-contains"
)

// Filter is a single predicate. Field may be a dotted path into nested
// objects, e.g. "nextFollowUp.date".
type Filter struct {
	Field string
	Op    Op
	Value any
}

type Query struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

// Store is the persistence boundary. Documents passed in and out carry
// time.Time values for every date field; implementations encode them before
// transmission and decode them on every read.
//
// Add strips any caller-supplied id/createdAt/updatedAt and assigns its own.
// Update merges fields into the existing record and refreshes updatedAt;
// createdAt is never changed after creation.
type Store interface {
	Add(ctx context.Context, kind string, data map[string]any) (string, error)
	Get(ctx context.Context, kind, id string) (map[string]any, error)
	Update(ctx context.Context, kind, id string, data map[string]any) error
	Delete(ctx context.Context, kind, id string) error
	List(ctx context.Context, kind string) ([]map[string]any, error)
	Query(ctx context.Context, kind string, q Query) ([]map[string]any, error)
}

// Collection names used across the services.
const (
	KindUsers         = "users"
	KindClients       = "clients"
	KindPerformers    = "performers"
	KindEvents        = "events"
	KindAgents        = "agents"
	KindTasks         = "tasks"
	KindNotifications = "notifications"
	KindDocuments     = "documents"
	KindAccounts      = "accounts"
)

// serverFields are assigned by the store and removed from caller input.
var serverFields = []string{"id", "createdAt", "updatedAt"}

func stripServerFields(data map[string]any) {
	for _, f := range serverFields {
		delete(data, f)
	}
}

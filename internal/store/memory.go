package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is the in-memory Store used by tests and local development. It
// mirrors the Postgres implementation's semantics exactly: merge updates,
// server-assigned stamps, canonical date encoding at rest.
type Memory struct {
	mu    sync.RWMutex
	kinds map[string]map[string]map[string]any
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		kinds: make(map[string]map[string]map[string]any),
		now:   time.Now,
	}
}

// WithClock overrides the timestamp source. Tests use it to pin createdAt
// and updatedAt values.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) collection(kind string) map[string]map[string]any {
	if m.kinds[kind] == nil {
		m.kinds[kind] = make(map[string]map[string]any)
	}
	return m.kinds[kind]
}

func (m *Memory) Add(ctx context.Context, kind string, data map[string]any) (string, error) {
	encoded, err := encodeValue(data)
	if err != nil {
		return "", &StorageError{Op: "add", Kind: kind, Err: err}
	}
	doc := encoded.(map[string]any)
	stripServerFields(doc)

	now := encodeTime(m.now())
	doc["createdAt"] = now
	doc["updatedAt"] = now

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.collection(kind)[id] = doc
	return id, nil
}

func (m *Memory) Get(ctx context.Context, kind, id string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.kinds[kind][id]
	if !ok {
		return nil, nil
	}
	return m.decodeRecord(id, doc), nil
}

func (m *Memory) Update(ctx context.Context, kind, id string, data map[string]any) error {
	encoded, err := encodeValue(data)
	if err != nil {
		return &StorageError{Op: "update", Kind: kind, Err: err}
	}
	patch := encoded.(map[string]any)
	stripServerFields(patch)

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.kinds[kind][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range patch {
		doc[k] = v
	}
	doc["updatedAt"] = encodeTime(m.now())
	return nil
}

func (m *Memory) Delete(ctx context.Context, kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.kinds[kind][id]; !ok {
		return ErrNotFound
	}
	delete(m.kinds[kind], id)
	return nil
}

func (m *Memory) List(ctx context.Context, kind string) ([]map[string]any, error) {
	return m.Query(ctx, kind, Query{})
}

func (m *Memory) Query(ctx context.Context, kind string, q Query) ([]map[string]any, error) {
	m.mu.RLock()
	docs := make([]map[string]any, 0, len(m.kinds[kind]))
	for id, doc := range m.kinds[kind] {
		decoded := m.decodeRecord(id, doc)
		if matchesFilters(decoded, q.Filters) {
			docs = append(docs, decoded)
		}
	}
	m.mu.RUnlock()

	if q.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			c := compareValues(fieldValue(docs[i], q.OrderBy), fieldValue(docs[j], q.OrderBy))
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

func (m *Memory) decodeRecord(id string, doc map[string]any) map[string]any {
	decoded := decodeValue(doc).(map[string]any)
	decoded["id"] = id
	return decoded
}

func matchesFilters(doc map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if !matchesFilter(doc, f) {
			return false
		}
	}
	return true
}

func matchesFilter(doc map[string]any, f Filter) bool {
	val := fieldValue(doc, f.Field)
	switch f.Op {
	case OpEqual:
		return compareValues(val, f.Value) == 0
	case OpGreaterEq:
		return val != nil && compareValues(val, f.Value) >= 0
	case OpLessEq:
		return val != nil && compareValues(val, f.Value) <= 0
	case OpContains:
		items, ok := val.([]any)
		if !ok {
			return false
		}
		for _, item := range items {
			if compareValues(item, f.Value) == 0 {
				return true
			}
		}
	}
	return false
}

// fieldValue resolves a dotted path against nested objects.
func fieldValue(doc map[string]any, path string) any {
	var val any = doc
	for _, part := range strings.Split(path, ".") {
		obj, ok := val.(map[string]any)
		if !ok {
			return nil
		}
		val = obj[part]
	}
	return val
}

// compareValues orders two document values of the same logical type.
// Mismatched or incomparable values compare as unequal.
func compareValues(a, b any) int {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	as := fmt.Sprintf("%v", a)
	bs := fmt.Sprintf("%v", b)
	return strings.Compare(as, bs)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

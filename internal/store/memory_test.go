package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAddAssignsServerFields(t *testing.T) {
	fixed := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory().WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	id, err := m.Add(ctx, KindClients, map[string]any{
		"name": "Hafenfest",
		// callers cannot smuggle their own stamps in
		"id":        "forged",
		"createdAt": "forged",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.NotEqual(t, "forged", id)

	doc, err := m.Get(ctx, KindClients, id)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, id, doc["id"])
	assert.Equal(t, "Hafenfest", doc["name"])

	createdAt, ok := doc["createdAt"].(time.Time)
	require.True(t, ok)
	assert.True(t, fixed.Equal(createdAt))
}

func TestMemoryGetMissingReturnsNilNil(t *testing.T) {
	m := NewMemory()

	doc, err := m.Get(context.Background(), KindClients, "nope")
	assert.NoError(t, err)
	assert.Nil(t, doc)
}

func TestMemoryUpdateMergesAndRefreshesUpdatedAt(t *testing.T) {
	current := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory().WithClock(func() time.Time { return current })
	ctx := context.Background()

	id, err := m.Add(ctx, KindClients, map[string]any{"name": "Keller", "phone": "123"})
	require.NoError(t, err)

	current = current.Add(time.Hour)
	require.NoError(t, m.Update(ctx, KindClients, id, map[string]any{"phone": "456"}))

	doc, err := m.Get(ctx, KindClients, id)
	require.NoError(t, err)

	assert.Equal(t, "Keller", doc["name"], "untouched fields survive a patch")
	assert.Equal(t, "456", doc["phone"])

	createdAt := doc["createdAt"].(time.Time)
	updatedAt := doc["updatedAt"].(time.Time)
	assert.True(t, createdAt.Equal(current.Add(-time.Hour)), "createdAt never moves after creation")
	assert.True(t, updatedAt.After(createdAt))
}

func TestMemoryUpdateMissingReturnsErrNotFound(t *testing.T) {
	m := NewMemory()
	err := m.Update(context.Background(), KindClients, "nope", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDeleteMissingReturnsErrNotFound(t *testing.T) {
	m := NewMemory()
	err := m.Delete(context.Background(), KindClients, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryQueryFiltersOrdersAndLimits(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, c := range []map[string]any{
		{"name": "Charlie", "status": "active"},
		{"name": "Alice", "status": "active"},
		{"name": "Bob", "status": "lead"},
	} {
		_, err := m.Add(ctx, KindClients, c)
		require.NoError(t, err)
	}

	docs, err := m.Query(ctx, KindClients, Query{
		Filters: []Filter{Where("status", OpEqual, "active")},
		OrderBy: "name",
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Alice", docs[0]["name"])
	assert.Equal(t, "Charlie", docs[1]["name"])

	docs, err = m.Query(ctx, KindClients, Query{OrderBy: "name", Descending: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Charlie", docs[0]["name"])
}

func TestMemoryQueryDateRangeOnNestedField(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	day := func(d int) time.Time {
		return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
	}

	for d := 1; d <= 5; d++ {
		_, err := m.Add(ctx, KindClients, map[string]any{
			"name":         "c",
			"nextFollowUp": map[string]any{"date": day(d), "task": "call"},
		})
		require.NoError(t, err)
	}

	docs, err := m.Query(ctx, KindClients, Query{
		Filters: []Filter{
			Where("nextFollowUp.date", OpGreaterEq, day(2)),
			Where("nextFollowUp.date", OpLessEq, day(4)),
		},
		OrderBy: "nextFollowUp.date",
	})
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestMemoryQueryContains(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Add(ctx, KindAgents, map[string]any{
		"name":           "Petra",
		"specialization": []string{"gala", "corporate"},
	})
	require.NoError(t, err)
	_, err = m.Add(ctx, KindAgents, map[string]any{
		"name":           "Henk",
		"specialization": []string{"street festival"},
	})
	require.NoError(t, err)

	docs, err := m.Query(ctx, KindAgents, Query{
		Filters: []Filter{Where("specialization", OpContains, "gala")},
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Petra", docs[0]["name"])
}

func TestMemoryRangeFilterSkipsMissingField(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Add(ctx, KindClients, map[string]any{"name": "no follow-up"})
	require.NoError(t, err)

	docs, err := m.Query(ctx, KindClients, Query{
		Filters: []Filter{Where("nextFollowUp.date", OpGreaterEq, time.Now())},
	})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

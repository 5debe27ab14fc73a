package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circussync/backend/internal/domain"
)

func TestEventsGetUpcomingOrdersAndLimits(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	addEvent := func(name string, daysFromNow int) {
		_, err := services.Events.Add(ctx, &domain.Event{
			Name:   name,
			Date:   time.Now().AddDate(0, 0, daysFromNow),
			Status: domain.EventStatusConfirmed,
		})
		require.NoError(t, err)
	}

	addEvent("in a month", 30)
	addEvent("next week", 7)
	addEvent("last week", -7)
	addEvent("tomorrow", 1)

	upcoming, err := services.Events.GetUpcoming(ctx, 2)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "tomorrow", upcoming[0].Name)
	assert.Equal(t, "next week", upcoming[1].Name)
}

func TestEventsGetByClientNewestFirst(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	for i, name := range []string{"first", "second", "third"} {
		_, err := services.Events.Add(ctx, &domain.Event{
			Name:   name,
			Date:   time.Date(2025, 3, 1+i, 0, 0, 0, 0, time.UTC),
			Client: "client-1",
		})
		require.NoError(t, err)
	}
	_, err := services.Events.Add(ctx, &domain.Event{
		Name:   "someone else's",
		Date:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Client: "client-2",
	})
	require.NoError(t, err)

	events, err := services.Events.GetByClient(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "third", events[0].Name)
	assert.Equal(t, "first", events[2].Name)
}

func TestEventsGetByPerformerScansAssignments(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	_, err := services.Events.Add(ctx, &domain.Event{
		Name: "with marlene",
		Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Performers: []domain.Assignment{
			{Performer: "marlene", Role: "aerial"},
			{Performer: "tomas", Role: "juggling"},
		},
	})
	require.NoError(t, err)
	_, err = services.Events.Add(ctx, &domain.Event{
		Name: "without her",
		Date: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		Performers: []domain.Assignment{
			{Performer: "tomas", Role: "juggling"},
		},
	})
	require.NoError(t, err)

	events, err := services.Events.GetByPerformer(ctx, "marlene")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "with marlene", events[0].Name)
}

func TestEventsGetInDateRange(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	for d := 1; d <= 10; d++ {
		_, err := services.Events.Add(ctx, &domain.Event{
			Name: "show",
			Date: time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	events, err := services.Events.GetInDateRange(ctx,
		time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 5, 23, 59, 59, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestEventsResolvePerformersKeepsOrderAndPlaceholders(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	marleneID, err := services.Performers.Add(ctx, &domain.Performer{Name: "Marlene"})
	require.NoError(t, err)
	tomasID, err := services.Performers.Add(ctx, &domain.Performer{Name: "Tomas"})
	require.NoError(t, err)

	event := &domain.Event{
		Name: "Gala",
		Date: time.Now(),
		Performers: []domain.Assignment{
			{Performer: tomasID, Role: "juggling"},
			{Performer: "deleted-performer", Role: "mystery"},
			{Performer: marleneID, Role: "aerial"},
		},
	}

	resolved, err := services.Events.ResolvePerformers(ctx, event)
	require.NoError(t, err)
	require.Len(t, resolved, 3)

	assert.Equal(t, "Tomas", resolved[0].Name)
	assert.Equal(t, domain.UnknownPerformerName, resolved[1].Name)
	assert.Equal(t, "deleted-performer", resolved[1].ID)
	assert.Equal(t, "Marlene", resolved[2].Name)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/store"
)

func TestPerformersGetBySkillSortsByName(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	for _, p := range []domain.Performer{
		{Name: "Tomas", Skills: []domain.Skill{{Category: domain.SkillJuggling}}},
		{Name: "Marlene", Skills: []domain.Skill{{Category: domain.SkillAerial}, {Category: domain.SkillJuggling}}},
		{Name: "Silvia", Skills: []domain.Skill{{Category: domain.SkillMagic}}},
	} {
		_, err := services.Performers.Add(ctx, &p)
		require.NoError(t, err)
	}

	jugglers, err := services.Performers.GetBySkill(ctx, domain.SkillJuggling)
	require.NoError(t, err)
	require.Len(t, jugglers, 2)
	assert.Equal(t, "Marlene", jugglers[0].Name)
	assert.Equal(t, "Tomas", jugglers[1].Name)
}

func TestPerformersAvailableForDate(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	day := time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC)

	for _, p := range []domain.Performer{
		{Name: "no entry"},
		{Name: "available", Availability: []domain.Availability{
			{Date: day, Status: domain.AvailabilityAvailable},
		}},
		{Name: "booked", Availability: []domain.Availability{
			{Date: day, Status: domain.AvailabilityUnavailable},
		}},
		{Name: "tentative", Availability: []domain.Availability{
			{Date: day, Status: domain.AvailabilityTentative},
		}},
		{Name: "booked elsewhere", Availability: []domain.Availability{
			{Date: day.AddDate(0, 0, 1), Status: domain.AvailabilityUnavailable},
		}},
	} {
		_, err := services.Performers.Add(ctx, &p)
		require.NoError(t, err)
	}

	// a different hour on the same calendar day still matches the entry
	available, err := services.Performers.GetAvailableForDate(ctx, day.Add(15*time.Hour))
	require.NoError(t, err)

	names := make([]string, 0, len(available))
	for _, p := range available {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"no entry", "available", "booked elsewhere"}, names)
}

func TestPerformersUpdateAvailabilityUpsertsPerDay(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	day := time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC)

	id, err := services.Performers.Add(ctx, &domain.Performer{Name: "Marlene"})
	require.NoError(t, err)

	require.NoError(t, services.Performers.UpdateAvailability(ctx, id, domain.Availability{
		Date:   day,
		Status: domain.AvailabilityTentative,
	}))

	// same calendar day replaces the entry instead of adding a second one
	require.NoError(t, services.Performers.UpdateAvailability(ctx, id, domain.Availability{
		Date:   day.Add(9 * time.Hour),
		Status: domain.AvailabilityUnavailable,
		Notes:  "booked for gala",
	}))

	require.NoError(t, services.Performers.UpdateAvailability(ctx, id, domain.Availability{
		Date:   day.AddDate(0, 0, 1),
		Status: domain.AvailabilityAvailable,
	}))

	performer, err := services.Performers.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, performer.Availability, 2)

	entry, ok := performer.AvailabilityOn(day)
	require.True(t, ok)
	assert.Equal(t, domain.AvailabilityUnavailable, entry.Status)
	assert.Equal(t, "booked for gala", entry.Notes)
}

func TestPerformersUpdateAvailabilityMissingPerformer(t *testing.T) {
	services := newTestService()

	err := services.Performers.UpdateAvailability(context.Background(), "nope", domain.Availability{
		Date:   time.Now(),
		Status: domain.AvailabilityAvailable,
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

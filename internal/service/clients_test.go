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

func newTestService() *Service {
	return New(store.NewMemory())
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestClientsAddStripsServerAssignedFields(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	id, err := services.Clients.Add(ctx, &domain.Client{
		ID:   "forged",
		Name: "Hafenfest Hamburg",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "forged", id)

	client, err := services.Clients.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, id, client.ID)
	assert.False(t, client.CreatedAt.IsZero())
}

func TestClientsGetMissingReturnsNil(t *testing.T) {
	services := newTestService()

	client, err := services.Clients.Get(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestClientsUpdateMergesPatch(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	id, err := services.Clients.Add(ctx, &domain.Client{
		Name:  "Keller & Sohn",
		Phone: "123",
	})
	require.NoError(t, err)

	require.NoError(t, services.Clients.Update(ctx, id, map[string]any{"phone": "456"}))

	client, err := services.Clients.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Keller & Sohn", client.Name)
	assert.Equal(t, "456", client.Phone)
}

func TestClientsUpdateMissingReturnsNotFound(t *testing.T) {
	services := newTestService()
	err := services.Clients.Update(context.Background(), "nope", map[string]any{"phone": "1"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestClientsGetByStatusOrdersByName(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	for _, c := range []domain.Client{
		{Name: "Zirkusfest", Status: domain.ClientStatusActive},
		{Name: "Altonale", Status: domain.ClientStatusActive},
		{Name: "Dormant GmbH", Status: domain.ClientStatusInactive},
	} {
		_, err := services.Clients.Add(ctx, &c)
		require.NoError(t, err)
	}

	active, err := services.Clients.GetByStatus(ctx, domain.ClientStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Altonale", active[0].Name)
	assert.Equal(t, "Zirkusfest", active[1].Name)
}

func TestClientsStatusChangeMovesBetweenStatusQueries(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	id, err := services.Clients.Add(ctx, &domain.Client{Name: "Acme", Status: domain.ClientStatusLead})
	require.NoError(t, err)

	leads, err := services.Clients.GetByStatus(ctx, domain.ClientStatusLead)
	require.NoError(t, err)
	require.Len(t, leads, 1)

	require.NoError(t, services.Clients.Update(ctx, id, map[string]any{"status": string(domain.ClientStatusActive)}))

	leads, err = services.Clients.GetByStatus(ctx, domain.ClientStatusLead)
	require.NoError(t, err)
	assert.Empty(t, leads)

	active, err := services.Clients.GetByStatus(ctx, domain.ClientStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, id, active[0].ID)
}

func TestClientsGetForFollowUpWindow(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	add := func(name string, due *time.Time) {
		client := domain.Client{Name: name, Status: domain.ClientStatusActive}
		if due != nil {
			client.NextFollowUp = &domain.FollowUp{Date: due, Task: "call"}
		}
		_, err := services.Clients.Add(ctx, &client)
		require.NoError(t, err)
	}

	add("due soon", timePtr(time.Now().AddDate(0, 0, 3)))
	add("due late", timePtr(time.Now().AddDate(0, 0, 30)))
	add("overdue", timePtr(time.Now().AddDate(0, 0, -1)))
	add("no follow-up", nil)

	clients, err := services.Clients.GetForFollowUp(ctx, 7)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "due soon", clients[0].Name)
}

func TestClientsSearchMatchesNameContactAndEmail(t *testing.T) {
	services := newTestService()
	ctx := context.Background()

	for _, c := range []domain.Client{
		{Name: "Hafenfest Hamburg", ContactPerson: "Jens Petersen", Email: "jens@hafen.example.com"},
		{Name: "Keller & Sohn", ContactPerson: "Birgit Keller", Email: "events@keller.example.com"},
	} {
		_, err := services.Clients.Add(ctx, &c)
		require.NoError(t, err)
	}

	byName, err := services.Clients.Search(ctx, "hafen")
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	byContact, err := services.Clients.Search(ctx, "BIRGIT")
	require.NoError(t, err)
	require.Len(t, byContact, 1)
	assert.Equal(t, "Keller & Sohn", byContact[0].Name)

	none, err := services.Clients.Search(ctx, "circus")
	require.NoError(t, err)
	assert.Empty(t, none)
}

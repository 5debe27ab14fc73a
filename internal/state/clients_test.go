package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/service"
	"github.com/circussync/backend/internal/store"
)

func newClientStore(t *testing.T) (*ClientStore, *service.Service) {
	t.Helper()
	services := service.New(store.NewMemory())
	return NewClientStore(services.Clients), services
}

func TestClientStoreLoad(t *testing.T) {
	s, services := newClientStore(t)
	ctx := context.Background()

	_, err := services.Clients.Add(ctx, &domain.Client{Name: "Hafenfest Hamburg", Status: domain.ClientStatusActive})
	require.NoError(t, err)
	_, err = services.Clients.Add(ctx, &domain.Client{Name: "Stadthalle Leipzig", Status: domain.ClientStatusLead})
	require.NoError(t, err)

	s.Load(ctx)

	snap := s.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
}

func TestClientStoreLoadOneMissing(t *testing.T) {
	s, _ := newClientStore(t)

	s.LoadOne(context.Background(), "no-such-client")

	snap := s.Snapshot()
	assert.Nil(t, snap.Selected)
	assert.Equal(t, "Client not found", snap.Error)
	assert.False(t, snap.Loading)
}

func TestClientStoreAddAppendsAndSelects(t *testing.T) {
	s, _ := newClientStore(t)
	ctx := context.Background()

	id, err := s.Add(ctx, &domain.Client{Name: "Keller & Sohn AG", Status: domain.ClientStatusActive})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, id, snap.Items[0].ID)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, id, snap.Selected.ID)
}

func TestClientStoreUpdateReplacesItemAndSelected(t *testing.T) {
	s, _ := newClientStore(t)
	ctx := context.Background()

	id, err := s.Add(ctx, &domain.Client{Name: "Keller & Sohn AG", Status: domain.ClientStatusLead})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, id, map[string]any{"status": string(domain.ClientStatusActive)}))

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, domain.ClientStatusActive, snap.Items[0].Status)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, domain.ClientStatusActive, snap.Selected.Status)
}

func TestClientStoreUpdateMissingRecordsError(t *testing.T) {
	s, _ := newClientStore(t)

	err := s.Update(context.Background(), "no-such-client", map[string]any{"name": "X"})
	require.Error(t, err)
	assert.Equal(t, "Failed to update client", s.Snapshot().Error)
}

func TestClientStoreDeleteRemovesAndClearsSelected(t *testing.T) {
	s, _ := newClientStore(t)
	ctx := context.Background()

	keep, err := s.Add(ctx, &domain.Client{Name: "Hafenfest Hamburg"})
	require.NoError(t, err)
	gone, err := s.Add(ctx, &domain.Client{Name: "Stadthalle Leipzig"})
	require.NoError(t, err)

	// the second Add selected the client about to be deleted
	require.NoError(t, s.Delete(ctx, gone))

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, keep, snap.Items[0].ID)
	assert.Nil(t, snap.Selected)
}

func TestClientStoreSubscribeFiresImmediately(t *testing.T) {
	s, _ := newClientStore(t)
	ctx := context.Background()

	var snaps []Snapshot[domain.Client]
	cancel := s.Subscribe(func(snap Snapshot[domain.Client]) { snaps = append(snaps, snap) })
	require.Len(t, snaps, 1, "subscribing publishes the current snapshot")

	_, err := s.Add(ctx, &domain.Client{Name: "Hafenfest Hamburg"})
	require.NoError(t, err)
	assert.Greater(t, len(snaps), 1)
	assert.Len(t, snaps[len(snaps)-1].Items, 1)

	cancel()
	seen := len(snaps)
	s.Load(ctx)
	assert.Equal(t, seen, len(snaps), "cancelled listeners stay quiet")
}

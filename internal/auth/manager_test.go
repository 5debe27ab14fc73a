package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/service"
	"github.com/circussync/backend/internal/store"
)

func newTestManager(t *testing.T) (*Manager, *StoreProvider, *service.Service) {
	t.Helper()
	st := store.NewMemory()
	provider := NewStoreProvider(st, nil)
	services := service.New(st)
	m := NewManager(provider, services.Users)
	t.Cleanup(m.Close)
	return m, provider, services
}

func TestRoleRanks(t *testing.T) {
	assert.Less(t, domain.RoleReadOnly.Rank(), domain.RolePerformer.Rank())
	assert.Less(t, domain.RolePerformer.Rank(), domain.RoleManager.Rank())
	assert.Less(t, domain.RoleManager.Rank(), domain.RoleAdmin.Rank())
}

func TestManagerStartsSignedOut(t *testing.T) {
	m, _, _ := newTestManager(t)

	state := m.State()
	assert.Nil(t, state.User)
	assert.Empty(t, state.Error)
}

func TestRegisterCreatesReadOnlyProfile(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Register(ctx, "marlene@example.com", "trapeze1", "Marlene"))

	state := m.State()
	require.NotNil(t, state.User)
	assert.Equal(t, "marlene@example.com", state.User.Email)
	assert.Equal(t, "Marlene", state.User.Name)
	assert.Equal(t, domain.RoleReadOnly, state.User.Role)
	assert.NotNil(t, state.User.LastLogin)
}

func TestSignInWithWrongPasswordSetsFixedMessage(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Register(ctx, "marlene@example.com", "trapeze1", "Marlene"))
	require.NoError(t, m.SignOut(ctx))

	err := m.SignIn(ctx, "marlene@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, MsgInvalidCredentials, err.Error())
	assert.Equal(t, MsgInvalidCredentials, m.State().Error)
	assert.Nil(t, m.State().User)
}

func TestSignInResolvesExistingProfile(t *testing.T) {
	m, _, services := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Register(ctx, "marlene@example.com", "trapeze1", "Marlene"))
	firstID := m.State().User.ID

	// promote while signed out, then sign back in
	require.NoError(t, m.SignOut(ctx))
	require.NoError(t, services.Users.Update(ctx, firstID, map[string]any{"role": string(domain.RoleManager)}))

	require.NoError(t, m.SignIn(ctx, "marlene@example.com", "trapeze1"))

	state := m.State()
	require.NotNil(t, state.User)
	assert.Equal(t, firstID, state.User.ID, "sign-in must reuse the existing profile")
	assert.Equal(t, domain.RoleManager, state.User.Role, "role survives re-login")
}

func TestSignOutClearsSessionAndRedirects(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	redirected := false
	m.RedirectToLogin = func() { redirected = true }

	require.NoError(t, m.Register(ctx, "marlene@example.com", "trapeze1", "Marlene"))
	require.NoError(t, m.SignOut(ctx))

	assert.Nil(t, m.State().User)
	assert.True(t, redirected)
}

func TestAuthorize(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	// no session: nothing is authorized, not even the lowest role
	assert.False(t, m.Authorize(domain.RoleReadOnly))

	require.NoError(t, m.Register(ctx, "marlene@example.com", "trapeze1", "Marlene"))

	assert.True(t, m.Authorize(domain.RoleReadOnly))
	assert.False(t, m.Authorize(domain.RolePerformer))
	assert.False(t, m.Authorize(domain.RoleAdmin))
}

func TestUpdateRoleRequiresAdmin(t *testing.T) {
	m, _, services := newTestManager(t)
	ctx := context.Background()

	targetID, err := services.Users.Create(ctx, &domain.User{Email: "target@example.com", Name: "Target"})
	require.NoError(t, err)

	require.NoError(t, m.Register(ctx, "manager@example.com", "trapeze1", "Manager"))

	err = m.UpdateRole(ctx, targetID, domain.RoleManager)
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, string(domain.RoleAdmin), authErr.Required)

	// the check happens before any write
	target, err := services.Users.Get(ctx, targetID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleReadOnly, target.Role)
}

func TestUpdateRoleAsAdmin(t *testing.T) {
	m, _, services := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Register(ctx, "admin@example.com", "trapeze1", "Admin"))
	adminID := m.State().User.ID
	require.NoError(t, services.Users.Update(ctx, adminID, map[string]any{"role": string(domain.RoleAdmin)}))
	// refresh the session state with the new role
	require.NoError(t, m.SignIn(ctx, "admin@example.com", "trapeze1"))

	targetID, err := services.Users.Create(ctx, &domain.User{Email: "target@example.com", Name: "Target"})
	require.NoError(t, err)

	require.NoError(t, m.UpdateRole(ctx, targetID, domain.RoleManager))

	target, err := services.Users.Get(ctx, targetID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, target.Role)
}

func TestUpdateProfilePublishesCurrentUser(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Register(ctx, "marlene@example.com", "trapeze1", "Marlene"))
	userID := m.State().User.ID

	var published []State
	cancel := m.Subscribe(func(s State) { published = append(published, s) })
	defer cancel()

	require.NoError(t, m.UpdateProfile(ctx, userID, map[string]any{"name": "Marlene H."}))

	assert.Equal(t, "Marlene H.", m.State().User.Name)
	require.NotEmpty(t, published)
	assert.Equal(t, "Marlene H.", published[len(published)-1].User.Name)
}

func TestResolveUserCreatesThenRefreshes(t *testing.T) {
	st := store.NewMemory()
	services := service.New(st)
	ctx := context.Background()

	identity := Identity{ID: "acct-1", Email: "marlene@example.com", Name: "Marlene"}

	created, err := ResolveUser(ctx, services.Users, identity)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleReadOnly, created.Role)
	require.NotNil(t, created.LastLogin)

	// second resolve keeps the profile and picks up the renamed identity
	identity.Name = "Marlene Hoffmann"
	resolved, err := ResolveUser(ctx, services.Users, identity)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)
	assert.Equal(t, "Marlene Hoffmann", resolved.Name)
}

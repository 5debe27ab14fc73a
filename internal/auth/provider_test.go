package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circussync/backend/internal/store"
)

func newTestProvider() *StoreProvider {
	return NewStoreProvider(store.NewMemory(), nil)
}

func register(t *testing.T, p *StoreProvider, email, password, name string) *Identity {
	t.Helper()
	identity, err := p.Register(context.Background(), email, password, name)
	require.NoError(t, err)
	return identity
}

func TestRegisterAndSignIn(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	registered := register(t, p, "marlene@example.com", "trapeze1", "Marlene")
	assert.NotEmpty(t, registered.ID)
	assert.Equal(t, "marlene@example.com", registered.Email)

	identity, err := p.SignIn(ctx, "marlene@example.com", "trapeze1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, identity.ID)
	assert.Equal(t, "Marlene", identity.Name)
}

func TestSignInNormalizesEmail(t *testing.T) {
	p := newTestProvider()

	register(t, p, "Marlene@Example.com", "trapeze1", "Marlene")

	identity, err := p.SignIn(context.Background(), "  MARLENE@EXAMPLE.COM ", "trapeze1")
	require.NoError(t, err)
	assert.Equal(t, "marlene@example.com", identity.Email)
}

func TestSignInWrongPassword(t *testing.T) {
	p := newTestProvider()
	register(t, p, "marlene@example.com", "trapeze1", "Marlene")

	_, err := p.SignIn(context.Background(), "marlene@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInUnknownEmail(t *testing.T) {
	p := newTestProvider()

	_, err := p.SignIn(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInRateLimitsAfterRepeatedFailures(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	register(t, p, "marlene@example.com", "trapeze1", "Marlene")

	for i := 0; i < maxFailedAttempts; i++ {
		_, err := p.SignIn(ctx, "marlene@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// even the right password is rejected while the window is active
	_, err := p.SignIn(ctx, "marlene@example.com", "trapeze1")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	p := newTestProvider()
	register(t, p, "marlene@example.com", "trapeze1", "Marlene")

	_, err := p.Register(context.Background(), "marlene@example.com", "other-password", "Imposter")
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	p := newTestProvider()

	_, err := p.Register(context.Background(), "not-an-email", "trapeze1", "Nobody")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	p := newTestProvider()

	_, err := p.Register(context.Background(), "marlene@example.com", "123", "Marlene")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestSendPasswordResetWithoutSender(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	register(t, p, "marlene@example.com", "trapeze1", "Marlene")

	err := p.SendPasswordReset(ctx, "marlene@example.com")
	assert.ErrorIs(t, err, ErrResetUnavailable)

	err = p.SendPasswordReset(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNoAccount)
}

func TestSendPasswordResetInvokesSender(t *testing.T) {
	var sentTo string
	st := store.NewMemory()
	p := NewStoreProvider(st, func(ctx context.Context, identity Identity) error {
		sentTo = identity.Email
		return nil
	})

	register(t, p, "marlene@example.com", "trapeze1", "Marlene")

	require.NoError(t, p.SendPasswordReset(context.Background(), "marlene@example.com"))
	assert.Equal(t, "marlene@example.com", sentTo)
}

func TestUpdatePassword(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	register(t, p, "marlene@example.com", "trapeze1", "Marlene")

	require.NoError(t, p.UpdatePassword(ctx, "marlene@example.com", "newsecret"))

	_, err := p.SignIn(ctx, "marlene@example.com", "trapeze1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.SignIn(ctx, "marlene@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestSubscribeObservesSessionChanges(t *testing.T) {
	p := newTestProvider()
	ctx := context.Background()

	var observed []*Identity
	cancel := p.Subscribe(func(identity *Identity, err error) {
		observed = append(observed, identity)
	})
	defer cancel()

	// immediate callback with no session
	require.Len(t, observed, 1)
	assert.Nil(t, observed[0])

	register(t, p, "marlene@example.com", "trapeze1", "Marlene")
	require.Len(t, observed, 2)
	require.NotNil(t, observed[1])
	assert.Equal(t, "marlene@example.com", observed[1].Email)

	require.NoError(t, p.SignOut(ctx))
	require.Len(t, observed, 3)
	assert.Nil(t, observed[2])
}

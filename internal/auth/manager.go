package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/service"
)

// State is the session snapshot published to subscribers.
type State struct {
	User    *domain.User
	Loading bool
	Error   string
}

// Manager holds the current session. It is an explicit, injectable state
// container: construct one per process (or per test), subscribe to it, and
// tear it down with Close.
type Manager struct {
	provider Provider
	users    *service.Users

	// RedirectToLogin, when set, runs after a successful sign-out.
	RedirectToLogin func()

	mu          sync.Mutex
	state       State
	listeners   map[int]func(State)
	nextID      int
	unsubscribe func()
}

func NewManager(provider Provider, users *service.Users) *Manager {
	m := &Manager{
		provider:  provider,
		users:     users,
		state:     State{Loading: true},
		listeners: make(map[int]func(State)),
	}
	m.unsubscribe = provider.Subscribe(m.onSessionChange)
	return m
}

func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// State returns the current session snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers a listener for session state changes. The listener is
// invoked immediately with the current state.
func (m *Manager) Subscribe(fn func(State)) (cancel func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	current := m.state
	m.mu.Unlock()

	fn(current)

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Manager) publish(state State) {
	m.mu.Lock()
	m.state = state
	listeners := make([]func(State), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// onSessionChange is the provider's session listener: a new identity is
// resolved to (or created as) an application user profile; a provider error
// is republished as an error state without failing.
func (m *Manager) onSessionChange(identity *Identity, err error) {
	if err != nil {
		slog.Error("session listener error", "error", err)
		m.publish(State{Error: MsgProfileLoadFailed})
		return
	}
	if identity == nil {
		m.publish(State{})
		return
	}

	user, err := ResolveUser(context.Background(), m.users, *identity)
	if err != nil {
		slog.Error("failed to resolve user profile", "email", identity.Email, "error", err)
		m.publish(State{Error: MsgProfileLoadFailed})
		return
	}
	m.publish(State{User: user})
}

// ResolveUser maps a provider identity to the application user profile,
// creating the profile on first sign-in with the lowest privilege role.
// The last-login stamp is refreshed either way.
func ResolveUser(ctx context.Context, users *service.Users, identity Identity) (*domain.User, error) {
	now := time.Now()

	user, err := users.GetByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		patch := map[string]any{"lastLogin": now}
		if identity.Name != "" && identity.Name != user.Name {
			patch["name"] = identity.Name
		}
		if identity.PhotoURL != "" && identity.PhotoURL != user.PhotoURL {
			patch["photoURL"] = identity.PhotoURL
		}
		if err := users.Update(ctx, user.ID, patch); err != nil {
			return nil, err
		}
		return users.Get(ctx, user.ID)
	}

	created := &domain.User{
		Email:     identity.Email,
		Name:      identity.Name,
		PhotoURL:  identity.PhotoURL,
		Role:      domain.RoleReadOnly,
		LastLogin: &now,
	}
	id, err := users.Create(ctx, created)
	if err != nil {
		return nil, err
	}
	return users.Get(ctx, id)
}

func (m *Manager) setLoading() {
	m.mu.Lock()
	state := m.state
	m.mu.Unlock()
	state.Loading = true
	state.Error = ""
	m.publish(state)
}

func (m *Manager) setError(msg string) {
	m.mu.Lock()
	state := m.state
	m.mu.Unlock()
	state.Loading = false
	state.Error = msg
	m.publish(state)
}

// SignIn authenticates with the provider. On success the session listener
// publishes the new state; on failure the provider error is classified into
// a fixed message, stored in state, and returned.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	m.setLoading()

	if _, err := m.provider.SignIn(ctx, email, password); err != nil {
		msg := ClassifySignIn(err)
		m.setError(msg)
		return errors.New(msg)
	}
	return nil
}

// SignOut clears the session and, when configured, redirects to the login
// surface.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.provider.SignOut(ctx); err != nil {
		return err
	}
	if m.RedirectToLogin != nil {
		m.RedirectToLogin()
	}
	return nil
}

// Register creates a provider identity with the given display name; the
// session listener then creates the matching user profile.
func (m *Manager) Register(ctx context.Context, email, password, name string) error {
	m.setLoading()

	if _, err := m.provider.Register(ctx, email, password, name); err != nil {
		msg := ClassifyRegister(err)
		m.setError(msg)
		return errors.New(msg)
	}
	return nil
}

func (m *Manager) ResetPassword(ctx context.Context, email string) error {
	if err := m.provider.SendPasswordReset(ctx, email); err != nil {
		return errors.New(ClassifyReset(err))
	}
	return nil
}

// UpdateProfile merges the patch into the user record. When the target is
// the current session's user, the in-memory state is patched immediately.
func (m *Manager) UpdateProfile(ctx context.Context, userID string, patch map[string]any) error {
	if err := m.users.Update(ctx, userID, patch); err != nil {
		return err
	}

	m.mu.Lock()
	current := m.state.User
	m.mu.Unlock()
	if current == nil || current.ID != userID {
		return nil
	}

	user, err := m.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	m.mu.Lock()
	state := m.state
	m.mu.Unlock()
	state.User = user
	m.publish(state)
	return nil
}

// UpdateRole changes a user's role. Only an admin session may do this; the
// check happens before any write.
func (m *Manager) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	m.mu.Lock()
	current := m.state.User
	m.mu.Unlock()

	if current == nil || current.Role != domain.RoleAdmin {
		return &AuthorizationError{Required: string(domain.RoleAdmin)}
	}
	return m.UpdateProfile(ctx, userID, map[string]any{"role": string(role)})
}

// Authorize reports whether the current session satisfies the required role:
// a user must be present, not mid-load, and rank at or above the requirement.
// No session means false for every role, including the lowest.
func (m *Manager) Authorize(required domain.Role) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.User == nil || m.state.Loading {
		return false
	}
	return m.state.User.Role.Rank() >= required.Rank()
}

func ClassifySignIn(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, ErrTooManyAttempts):
		return MsgTooManyAttempts
	default:
		return MsgSignInFailed
	}
}

func ClassifyRegister(err error) string {
	switch {
	case errors.Is(err, ErrEmailInUse):
		return MsgEmailInUse
	case errors.Is(err, ErrWeakPassword):
		return MsgWeakPassword
	case errors.Is(err, ErrInvalidEmail):
		return MsgInvalidEmail
	default:
		return MsgRegisterFailed
	}
}

func ClassifyReset(err error) string {
	switch {
	case errors.Is(err, ErrNoAccount):
		return MsgNoAccount
	case errors.Is(err, ErrInvalidEmail):
		return MsgInvalidEmail
	default:
		return MsgResetFailed
	}
}

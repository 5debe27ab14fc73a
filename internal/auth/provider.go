// Package auth holds the identity boundary and the session manager. The
// identity provider keeps credential accounts; the application user profiles
// live in the users collection and are resolved from an identity on every
// session change.
package auth

import (
	"context"
	"net/mail"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/circussync/backend/internal/store"
)

// Identity is an authenticated principal as the provider sees it, before it
// is resolved to an application user profile.
type Identity struct {
	ID       string
	Email    string
	Name     string
	PhotoURL string
}

// Listener receives session changes: a signed-in identity, nil on sign-out,
// or a provider-reported error.
type Listener func(identity *Identity, err error)

// Provider is the identity boundary: email/password sign-in, registration,
// password-reset dispatch, display-name update, sign-out, and a
// session-change subscription.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignOut(ctx context.Context) error
	Register(ctx context.Context, email, password, name string) (*Identity, error)
	SendPasswordReset(ctx context.Context, email string) error
	UpdateDisplayName(ctx context.Context, id, name string) error
	UpdatePassword(ctx context.Context, email, password string) error
	Subscribe(fn Listener) (cancel func())
}

// ResetSender dispatches a password-reset message for an account. The API
// server wires this to the mail queue.
type ResetSender func(ctx context.Context, identity Identity) error

const (
	maxFailedAttempts  = 5
	failedAttemptsSpan = 15 * time.Minute
	minPasswordLength  = 6
)

type account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PhotoURL     string `json:"photoURL,omitempty"`
	PasswordHash string `json:"passwordHash"`
}

// StoreProvider implements Provider on top of the document store, with
// bcrypt password hashes and a failed-attempt limiter per email.
type StoreProvider struct {
	store store.Store
	reset ResetSender

	mu        sync.Mutex
	current   *Identity
	listeners map[int]Listener
	nextID    int
	failures  map[string]*failureWindow
}

type failureWindow struct {
	count int
	since time.Time
}

func NewStoreProvider(st store.Store, reset ResetSender) *StoreProvider {
	return &StoreProvider{
		store:     st,
		reset:     reset,
		listeners: make(map[int]Listener),
		failures:  make(map[string]*failureWindow),
	}
}

func (p *StoreProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if p.rateLimited(email) {
		return nil, ErrTooManyAttempts
	}

	acct, err := p.findAccount(ctx, email)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		p.recordFailure(email)
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		p.recordFailure(email)
		return nil, ErrInvalidCredentials
	}
	p.clearFailures(email)

	identity := acct.identity()
	p.setCurrent(&identity)
	return &identity, nil
}

func (p *StoreProvider) SignOut(ctx context.Context) error {
	p.setCurrent(nil)
	return nil
}

func (p *StoreProvider) Register(ctx context.Context, email, password, name string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	existing, err := p.findAccount(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	doc, err := store.EncodeDocument(account{Email: email, Name: name, PasswordHash: string(hash)})
	if err != nil {
		return nil, err
	}
	id, err := p.store.Add(ctx, store.KindAccounts, doc)
	if err != nil {
		return nil, err
	}

	identity := Identity{ID: id, Email: email, Name: name}
	p.setCurrent(&identity)
	return &identity, nil
}

func (p *StoreProvider) SendPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	acct, err := p.findAccount(ctx, email)
	if err != nil {
		return err
	}
	if acct == nil {
		return ErrNoAccount
	}
	if p.reset == nil {
		return ErrResetUnavailable
	}
	return p.reset(ctx, acct.identity())
}

func (p *StoreProvider) UpdateDisplayName(ctx context.Context, id, name string) error {
	err := p.store.Update(ctx, store.KindAccounts, id, map[string]any{"name": name})
	if err != nil {
		return err
	}

	p.mu.Lock()
	if p.current != nil && p.current.ID == id {
		p.current.Name = name
	}
	p.mu.Unlock()
	return nil
}

func (p *StoreProvider) UpdatePassword(ctx context.Context, email, password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	acct, err := p.findAccount(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if acct == nil {
		return ErrNoAccount
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return p.store.Update(ctx, store.KindAccounts, acct.ID, map[string]any{"passwordHash": string(hash)})
}

func (p *StoreProvider) Subscribe(fn Listener) (cancel func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	current := p.current
	p.mu.Unlock()

	// new subscribers immediately observe the current session
	fn(current, nil)

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

func (p *StoreProvider) setCurrent(identity *Identity) {
	p.mu.Lock()
	p.current = identity
	listeners := make([]Listener, 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(identity, nil)
	}
}

func (p *StoreProvider) findAccount(ctx context.Context, email string) (*account, error) {
	docs, err := p.store.Query(ctx, store.KindAccounts, store.Query{
		Filters: []store.Filter{store.Where("email", store.OpEqual, email)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	acct := &account{}
	if err := store.DecodeDocument(docs[0], acct); err != nil {
		return nil, err
	}
	return acct, nil
}

func (a *account) identity() Identity {
	return Identity{ID: a.ID, Email: a.Email, Name: a.Name, PhotoURL: a.PhotoURL}
}

func (p *StoreProvider) rateLimited(email string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.failures[email]
	if !ok {
		return false
	}
	if time.Since(w.since) > failedAttemptsSpan {
		delete(p.failures, email)
		return false
	}
	return w.count >= maxFailedAttempts
}

func (p *StoreProvider) recordFailure(email string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.failures[email]
	if !ok || time.Since(w.since) > failedAttemptsSpan {
		p.failures[email] = &failureWindow{count: 1, since: time.Now()}
		return
	}
	w.count++
}

func (p *StoreProvider) clearFailures(email string) {
	p.mu.Lock()
	delete(p.failures, email)
	p.mu.Unlock()
}

package state

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeKey is the fixed preference key.
const ThemeKey = "theme"

// Preferences is the tiny persistence boundary for client-side preferences.
type Preferences interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ThemeStore keeps the light/dark preference: read once at startup, written
// on every change or toggle.
type ThemeStore struct {
	prefs Preferences

	mu        sync.Mutex
	theme     Theme
	listeners map[int]func(Theme)
	nextID    int
}

func NewThemeStore(prefs Preferences) *ThemeStore {
	return &ThemeStore{prefs: prefs, theme: ThemeLight}
}

// Load reads the persisted preference. A missing or unrecognized value
// leaves the default light theme in place.
func (s *ThemeStore) Load(ctx context.Context) error {
	value, err := s.prefs.Get(ctx, ThemeKey)
	if err != nil {
		return err
	}
	if Theme(value) == ThemeDark {
		s.publish(ThemeDark)
	}
	return nil
}

func (s *ThemeStore) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *ThemeStore) Set(ctx context.Context, theme Theme) error {
	if theme != ThemeLight && theme != ThemeDark {
		theme = ThemeLight
	}
	if err := s.prefs.Set(ctx, ThemeKey, string(theme)); err != nil {
		return err
	}
	s.publish(theme)
	return nil
}

func (s *ThemeStore) Toggle(ctx context.Context) error {
	if s.Theme() == ThemeLight {
		return s.Set(ctx, ThemeDark)
	}
	return s.Set(ctx, ThemeLight)
}

func (s *ThemeStore) Subscribe(fn func(Theme)) (cancel func()) {
	s.mu.Lock()
	if s.listeners == nil {
		s.listeners = make(map[int]func(Theme))
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.theme
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *ThemeStore) publish(theme Theme) {
	s.mu.Lock()
	s.theme = theme
	listeners := make([]func(Theme), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(theme)
	}
}

// RedisPreferences stores preferences under a shared hash key.
type RedisPreferences struct {
	client *redis.Client
	key    string
}

func NewRedisPreferences(client *redis.Client) *RedisPreferences {
	return &RedisPreferences{client: client, key: "circussync:preferences"}
}

func (p *RedisPreferences) Get(ctx context.Context, key string) (string, error) {
	value, err := p.client.HGet(ctx, p.key, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return value, err
}

func (p *RedisPreferences) Set(ctx context.Context, key, value string) error {
	return p.client.HSet(ctx, p.key, key, value).Err()
}

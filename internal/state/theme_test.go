package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePreferences struct {
	values map[string]string
}

func newFakePreferences() *fakePreferences {
	return &fakePreferences{values: make(map[string]string)}
}

func (p *fakePreferences) Get(ctx context.Context, key string) (string, error) {
	return p.values[key], nil
}

func (p *fakePreferences) Set(ctx context.Context, key, value string) error {
	p.values[key] = value
	return nil
}

func TestThemeDefaultsToLight(t *testing.T) {
	s := NewThemeStore(newFakePreferences())
	assert.Equal(t, ThemeLight, s.Theme())
}

func TestThemeLoadOnlySwitchesOnDark(t *testing.T) {
	prefs := newFakePreferences()
	s := NewThemeStore(prefs)

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, ThemeLight, s.Theme(), "missing preference keeps the default")

	prefs.values[ThemeKey] = "sepia"
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, ThemeLight, s.Theme(), "unrecognized value keeps the default")

	prefs.values[ThemeKey] = string(ThemeDark)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, ThemeDark, s.Theme())
}

func TestThemeSetPersistsAndNormalizes(t *testing.T) {
	prefs := newFakePreferences()
	s := NewThemeStore(prefs)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, ThemeDark))
	assert.Equal(t, ThemeDark, s.Theme())
	assert.Equal(t, "dark", prefs.values[ThemeKey])

	require.NoError(t, s.Set(ctx, Theme("sepia")))
	assert.Equal(t, ThemeLight, s.Theme(), "unknown themes fall back to light")
	assert.Equal(t, "light", prefs.values[ThemeKey])
}

func TestThemeToggle(t *testing.T) {
	s := NewThemeStore(newFakePreferences())
	ctx := context.Background()

	require.NoError(t, s.Toggle(ctx))
	assert.Equal(t, ThemeDark, s.Theme())

	require.NoError(t, s.Toggle(ctx))
	assert.Equal(t, ThemeLight, s.Theme())
}

func TestThemeSubscribe(t *testing.T) {
	s := NewThemeStore(newFakePreferences())

	var seen []Theme
	cancel := s.Subscribe(func(theme Theme) { seen = append(seen, theme) })
	defer cancel()

	require.Equal(t, []Theme{ThemeLight}, seen, "subscribing publishes the current theme")

	require.NoError(t, s.Set(context.Background(), ThemeDark))
	assert.Equal(t, ThemeDark, seen[len(seen)-1])
}

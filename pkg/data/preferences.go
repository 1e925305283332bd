package data

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

const (
	FavoritesKey = "favorites"
	ThemeKey     = "theme"
)

// Favorites is the set of favorited country codes, written through to storage on
// every mutation.
type Favorites struct {
	mu    sync.Mutex
	store Storage
	codes []string
}

// NewFavorites rehydrates the set from store.
func NewFavorites(store Storage) *Favorites {
	f := &Favorites{store: store}
	f.Load()
	return f
}

// Load re-reads the persisted set. A corrupt blob is discarded and an empty set is
// returned; the parse error never reaches the caller.
func (f *Favorites) Load() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.codes = []string{}

	raw, ok, err := f.store.Get(FavoritesKey)
	if err != nil {
		slog.Warn("could not read favorites", "error", err)
		return []string{}
	}
	if !ok {
		return []string{}
	}

	var codes []string
	if err := json.Unmarshal([]byte(raw), &codes); err != nil {
		slog.Warn("discarding corrupt favorites", "error", err)
		if err := f.store.Delete(FavoritesKey); err != nil {
			slog.Warn("could not delete corrupt favorites", "error", err)
		}
		return []string{}
	}

	for _, code := range codes {
		code = normalizeCode(code)
		if !ValidCode(code) {
			slog.Warn("dropping invalid favorite", "code", code)
			continue
		}
		if !slices.Contains(f.codes, code) {
			f.codes = append(f.codes, code)
		}
	}

	return slices.Clone(f.codes)
}

// Toggle removes code if present, appends it otherwise, and persists the result
// before returning. On a write failure the in-memory set is left untouched.
func (f *Favorites) Toggle(code string) ([]string, error) {
	code = normalizeCode(code)
	if !ValidCode(code) {
		return nil, fmt.Errorf("invalid country code %q", code)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var next []string
	if i := slices.Index(f.codes, code); i >= 0 {
		next = slices.Delete(slices.Clone(f.codes), i, i+1)
	} else {
		next = append(slices.Clone(f.codes), code)
	}

	blob, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := f.store.Set(FavoritesKey, string(blob)); err != nil {
		return nil, fmt.Errorf("failed to save favorites: %w", err)
	}

	f.codes = next
	return slices.Clone(next), nil
}

func (f *Favorites) IsFavorite(code string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Contains(f.codes, normalizeCode(code))
}

func (f *Favorites) Codes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.codes)
}

func (f *Favorites) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.codes)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCode reports whether code is a three-letter upper-case country code.
func ValidCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

type Theme string

const (
	LightTheme Theme = "light"
	DarkTheme  Theme = "dark"
)

func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case LightTheme:
		return LightTheme, true
	case DarkTheme:
		return DarkTheme, true
	}
	return "", false
}

func (t Theme) Toggle() Theme {
	if t == DarkTheme {
		return LightTheme
	}
	return DarkTheme
}

// ThemeStore persists the light/dark preference as a plain string.
type ThemeStore struct {
	store Storage
}

func NewThemeStore(store Storage) *ThemeStore {
	return &ThemeStore{store: store}
}

// Load returns the stored theme, or fallback when nothing valid is stored.
func (s *ThemeStore) Load(fallback Theme) Theme {
	raw, ok, err := s.store.Get(ThemeKey)
	if err != nil {
		slog.Warn("could not read theme", "error", err)
		return fallback
	}
	if !ok {
		return fallback
	}

	theme, valid := ParseTheme(raw)
	if !valid {
		slog.Warn("discarding unknown theme", "value", raw)
		if err := s.store.Delete(ThemeKey); err != nil {
			slog.Warn("could not delete theme", "error", err)
		}
		return fallback
	}
	return theme
}

func (s *ThemeStore) Set(theme Theme) error {
	if _, ok := ParseTheme(string(theme)); !ok {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if err := s.store.Set(ThemeKey, string(theme)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Toggle flips the current theme (fallback applies when none is stored).
func (s *ThemeStore) Toggle(fallback Theme) (Theme, error) {
	next := s.Load(fallback).Toggle()
	if err := s.Set(next); err != nil {
		return "", err
	}
	return next, nil
}

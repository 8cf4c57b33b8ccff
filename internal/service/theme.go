package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/BuzzLyutic/tasklist/internal/model"
	"github.com/BuzzLyutic/tasklist/internal/repo"
)

const DefaultThemeKey = "theme"

// ThemeService keeps the last applied theme in memory, so a failed write
// never leaves the caller stuck on the stored value.
type ThemeService struct {
	mu      sync.Mutex
	kv      repo.KV
	key     string
	current model.Theme
	loaded  bool
}

func NewThemeService(kv repo.KV, key string) *ThemeService {
	if key == "" {
		key = DefaultThemeKey
	}
	return &ThemeService{kv: kv, key: key}
}

// Load re-reads the stored theme: dark only when exactly "dark" is stored.
func (s *ThemeService) Load(ctx context.Context) model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Current returns the theme in effect, reading the store only on first use.
func (s *ThemeService) Current(ctx context.Context) model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return s.load(ctx)
	}
	return s.current
}

// Set applies theme in memory and persists it. The in-memory value is kept
// when the write fails.
func (s *ThemeService) Set(ctx context.Context, theme model.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(ctx, theme)
}

func (s *ThemeService) Toggle(ctx context.Context) (model.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.load(ctx)
	}
	next := s.current.Opposite()
	return next, s.set(ctx, next)
}

func (s *ThemeService) load(ctx context.Context) model.Theme {
	theme := model.ThemeLight
	v, found, err := s.kv.Get(ctx, s.key)
	if err == nil && found && model.Theme(v) == model.ThemeDark {
		theme = model.ThemeDark
	}
	s.current = theme
	s.loaded = true
	return theme
}

func (s *ThemeService) set(ctx context.Context, theme model.Theme) error {
	if theme != model.ThemeDark {
		theme = model.ThemeLight
	}
	s.current = theme
	s.loaded = true
	if err := s.kv.Set(ctx, s.key, string(theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

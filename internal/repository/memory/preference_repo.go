package memory

import (
	"context"
	"sync"
)

// PreferenceRepo — хранилище флага темы в памяти процесса, используется без Redis.
type PreferenceRepo struct {
	mu     sync.RWMutex
	values map[string]bool
}

func NewPreferenceRepo() *PreferenceRepo {
	return &PreferenceRepo{values: make(map[string]bool)}
}

func (p *PreferenceRepo) GetDarkTheme(_ context.Context, sessionID string) (bool, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	dark, ok := p.values[sessionID]
	return dark, ok, nil
}

func (p *PreferenceRepo) SetDarkTheme(_ context.Context, sessionID string, dark bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.values[sessionID] = dark
	return nil
}

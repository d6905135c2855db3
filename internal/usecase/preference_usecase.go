package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/solar-store/pkg/e"
	"github.com/DRSN-tech/solar-store/pkg/logger"
)

// PreferenceUseCase хранит настройку темы вне стора витрины.
type PreferenceUseCase struct {
	repo        PreferenceRepository
	defaultDark bool
	logger      logger.Logger
}

func NewPreferenceUC(repo PreferenceRepository, defaultDark bool, logger logger.Logger) *PreferenceUseCase {
	return &PreferenceUseCase{
		repo:        repo,
		defaultDark: defaultDark,
		logger:      logger,
	}
}

// GetTheme возвращает сохранённый флаг темы или значение по умолчанию.
func (p *PreferenceUseCase) GetTheme(ctx context.Context, sessionID string) (*ThemePreference, error) {
	const op = "PreferenceUseCase.GetTheme"

	if strings.TrimSpace(sessionID) == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	dark, found, err := p.repo.GetDarkTheme(ctx, sessionID)
	if err != nil {
		// тема не критична: отдаём значение по умолчанию
		p.logger.Warnf("Failed to read theme preference: %v", e.Wrap(op, err))
		return NewThemePreference(sessionID, p.defaultDark), nil
	}

	if !found {
		return NewThemePreference(sessionID, p.defaultDark), nil
	}

	return NewThemePreference(sessionID, dark), nil
}

// SetTheme сохраняет флаг темы для сессии.
func (p *PreferenceUseCase) SetTheme(ctx context.Context, pref *ThemePreference) error {
	const op = "PreferenceUseCase.SetTheme"

	if strings.TrimSpace(pref.SessionID) == "" {
		return e.Wrap(op, e.ErrMissingFields)
	}

	if err := p.repo.SetDarkTheme(ctx, pref.SessionID, pref.Dark); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

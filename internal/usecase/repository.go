package usecase

import (
	"context"

	"github.com/DRSN-tech/solar-store/internal/domain"
)

// PreferenceRepository хранит флаг темы. found=false, если значение для сессии не сохранялось.
type PreferenceRepository interface {
	GetDarkTheme(ctx context.Context, sessionID string) (dark bool, found bool, err error)
	SetDarkTheme(ctx context.Context, sessionID string, dark bool) error
}

// SeedRepository — внешний источник стартового каталога.
type SeedRepository interface {
	LoadSeed(ctx context.Context) ([]domain.Product, error)
}

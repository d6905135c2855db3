package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/DRSN-tech/solar-store/internal/cfg"
	"github.com/DRSN-tech/solar-store/pkg/clients"
	"github.com/DRSN-tech/solar-store/pkg/e"
	"github.com/DRSN-tech/solar-store/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// PreferenceRepo хранит флаг тёмной темы под ключом <prefix>:theme:<session>.
type PreferenceRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewPreferenceRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *PreferenceRepo {
	return &PreferenceRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// GetDarkTheme читает флаг темы. Отсутствие ключа даёт found=false без ошибки.
func (p *PreferenceRepo) GetDarkTheme(ctx context.Context, sessionID string) (bool, bool, error) {
	key := themeKey(p.cfg.KeyPrefix, sessionID)

	val, err := p.client.Client.Get(ctx, key).Result()
	if errors.Is(err, r.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, e.Wrap(whereami.WhereAmI(), err)
	}

	dark, err := strconv.ParseBool(val)
	if err != nil {
		p.logger.Warnf("Corrupted theme flag, dropping key %s: %q", key, val)
		if err := p.client.Client.Del(ctx, key).Err(); err != nil {
			p.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return false, false, nil
	}

	return dark, true, nil
}

// SetDarkTheme сохраняет флаг темы с TTL из конфигурации (0: без истечения).
func (p *PreferenceRepo) SetDarkTheme(ctx context.Context, sessionID string, dark bool) error {
	key := themeKey(p.cfg.KeyPrefix, sessionID)

	if err := p.client.Client.Set(ctx, key, strconv.FormatBool(dark), p.cfg.ThemeTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// themeKey возвращает Redis-ключ флага темы для сессии
func themeKey(prefix, sessionID string) string {
	return fmt.Sprintf("%s:theme:%s", prefix, sessionID)
}

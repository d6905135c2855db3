package app

import (
	"context"

	config "github.com/DRSN-tech/solar-store/internal/cfg"
	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/internal/repository/file"
	"github.com/DRSN-tech/solar-store/internal/repository/pgdb"
	"github.com/DRSN-tech/solar-store/internal/store"
	"github.com/DRSN-tech/solar-store/internal/usecase"
	"github.com/DRSN-tech/solar-store/pkg/e"
	"github.com/DRSN-tech/solar-store/pkg/logger"
	"github.com/DRSN-tech/solar-store/pkg/postgres"
	"github.com/jimlawless/whereami"
)

// LoadSeed читает стартовый каталог из источника, заданного в конфигурации.
// Соединение с PostgreSQL нужно только на время загрузки.
func LoadSeed(ctx context.Context, cfg *config.Config, log logger.Logger) ([]domain.Product, error) {
	var repo usecase.SeedRepository

	switch cfg.Seed.Source {
	case config.SeedSourceBuiltin:
		return store.DefaultSeed(), nil
	case config.SeedSourceFile:
		repo = file.NewSeedRepo(cfg.Seed.FilePath)
	case config.SeedSourcePostgres:
		db, err := initPGDB(ctx, cfg.Db, log)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		defer db.Close(ctx)

		repo = pgdb.NewSeedRepo(db.Pool)
	default:
		return nil, e.Wrap(cfg.Seed.Source, e.ErrUnknownSeedSource)
	}

	products, err := repo.LoadSeed(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return products, nil
}

func initPGDB(ctx context.Context, cfg *config.PGDBCfg, log logger.Logger) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(log); err != nil {
		log.Errorf(err, "failed to run migrations")
		db.Close(ctx)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

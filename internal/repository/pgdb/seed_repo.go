package pgdb

import (
	"context"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/solar-store/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jimlawless/whereami"
)

// Querier — часть *pgxpool.Pool, нужная SeedRepo.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// SeedRepo читает стартовый каталог из таблицы catalog_seed.
type SeedRepo struct {
	pool Querier
}

func NewSeedRepo(pool Querier) *SeedRepo {
	return &SeedRepo{pool: pool}
}

// LoadSeed возвращает все строки каталога в порядке id.
func (s *SeedRepo) LoadSeed(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, category, description, price::text AS price, image_url
		FROM catalog_seed
		ORDER BY id;
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.CatalogSeedModel])
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	products := make([]domain.Product, 0, len(models))
	for i := range models {
		p, err := models[i].ToEntity()
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		products = append(products, p)
	}

	return products, nil
}

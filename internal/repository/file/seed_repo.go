package file

import (
	"context"
	"encoding/json"
	"os"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

// seedRecord — запись JSON-файла каталога. Цена принимается и строкой, и числом.
type seedRecord struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
}

// SeedRepo читает стартовый каталог из JSON-файла (массив товаров).
type SeedRepo struct {
	path string
}

func NewSeedRepo(path string) *SeedRepo {
	return &SeedRepo{path: path}
}

func (s *SeedRepo) LoadSeed(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return Decode(raw)
}

// Decode разбирает содержимое файла каталога. Валидация товаров остаётся за store.New.
func Decode(raw []byte) ([]domain.Product, error) {
	var records []seedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidJSON)
	}

	products := make([]domain.Product, 0, len(records))
	for _, r := range records {
		products = append(products, domain.NewProduct(
			r.ID, r.Name, domain.Category(r.Category), r.Description, r.Price, r.ImageURL,
		))
	}

	return products, nil
}

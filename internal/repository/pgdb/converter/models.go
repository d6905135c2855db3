package converter

import (
	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/pkg/e"
	"github.com/shopspring/decimal"
)

// CatalogSeedModel представляет запись таблицы catalog_seed в PostgreSQL.
// Цена читается как текст (price::text), чтобы не терять точность numeric.
type CatalogSeedModel struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Category    string `db:"category"`
	Description string `db:"description"`
	Price       string `db:"price"`
	ImageURL    string `db:"image_url"`
}

// ToEntity переводит строку таблицы в доменный продукт.
func (m *CatalogSeedModel) ToEntity() (domain.Product, error) {
	price, err := decimal.NewFromString(m.Price)
	if err != nil {
		return domain.Product{}, e.Wrap("CatalogSeedModel.ToEntity", e.ErrInvalidPrice)
	}

	return domain.NewProduct(m.ID, m.Name, domain.Category(m.Category), m.Description, price, m.ImageURL), nil
}

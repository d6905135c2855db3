package domain

import "github.com/shopspring/decimal"

// Product описывает продукт каталога
type Product struct {
	ID          int64
	Name        string          `validate:"notblank"`
	Category    Category        `validate:"category"`
	Description string
	Price       decimal.Decimal `validate:"gte=0"`
	ImageURL    string
}

// ProductDraft — продукт без идентификатора; идентификатор назначает стор.
type ProductDraft struct {
	Name        string          `validate:"notblank"`
	Category    Category        `validate:"category"`
	Description string
	Price       decimal.Decimal `validate:"gte=0"`
	ImageURL    string
}

func NewProduct(id int64, name string, category Category, description string, price decimal.Decimal, imageURL string) Product {
	return Product{
		ID:          id,
		Name:        name,
		Category:    category,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
	}
}

func NewProductDraft(name string, category Category, description string, price decimal.Decimal, imageURL string) ProductDraft {
	return ProductDraft{
		Name:        name,
		Category:    category,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
	}
}

// WithID превращает черновик в продукт с назначенным идентификатором.
func (d ProductDraft) WithID(id int64) Product {
	return NewProduct(id, d.Name, d.Category, d.Description, d.Price, d.ImageURL)
}

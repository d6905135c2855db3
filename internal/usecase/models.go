package usecase

import (
	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/shopspring/decimal"
)

// STOREFRONT

// ListProductsReq — запрос каталога. Пустая категория означает текущий фильтр стора.
type ListProductsReq struct {
	Category domain.Category
}

// CatalogView — отфильтрованный каталог и применённый фильтр.
type CatalogView struct {
	Products []domain.Product
	Category domain.Category
}

// CategoriesView — все значения фильтра (включая all) и выбранное.
type CategoriesView struct {
	Categories []domain.Category
	Selected   domain.Category
}

// CartView — корзина с количеством строк и итогом.
type CartView struct {
	Items []domain.CartItem
	Count int
	Total decimal.Decimal
}

// CheckoutRes — подтверждение оформления. Оплата не проводится.
type CheckoutRes struct {
	ConfirmationID string
	Message        string
	Total          decimal.Decimal
	Items          []domain.CartItem
}

// UpdateProductRes — результат обновления. NotFound означает, что продукта с таким id нет, стор не изменился.
type UpdateProductRes struct {
	Product  domain.Product
	NotFound bool
}

// PREFERENCES

// ThemePreference — флаг тёмной темы для сессии.
type ThemePreference struct {
	SessionID string
	Dark      bool
}

// MAPPERS

func NewListProductsReq(category domain.Category) *ListProductsReq {
	return &ListProductsReq{Category: category}
}

func NewCatalogView(products []domain.Product, category domain.Category) *CatalogView {
	return &CatalogView{
		Products: products,
		Category: category,
	}
}

func NewCategoriesView(selected domain.Category) *CategoriesView {
	return &CategoriesView{
		Categories: append([]domain.Category{domain.CategoryAll}, domain.Categories()...),
		Selected:   selected,
	}
}

func NewCartView(items []domain.CartItem, total decimal.Decimal) *CartView {
	return &CartView{
		Items: items,
		Count: len(items),
		Total: total,
	}
}

func NewCheckoutRes(confirmationID string, message string, total decimal.Decimal, items []domain.CartItem) *CheckoutRes {
	return &CheckoutRes{
		ConfirmationID: confirmationID,
		Message:        message,
		Total:          total,
		Items:          items,
	}
}

func NewUpdateProductRes(product domain.Product, notFound bool) *UpdateProductRes {
	return &UpdateProductRes{
		Product:  product,
		NotFound: notFound,
	}
}

func NewThemePreference(sessionID string, dark bool) *ThemePreference {
	return &ThemePreference{
		SessionID: sessionID,
		Dark:      dark,
	}
}

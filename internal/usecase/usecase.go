package usecase

import (
	"context"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/internal/store"
)

// StorefrontUC описывает полный контракт витрины для слоёв доставки.
type StorefrontUC interface {
	ListProducts(ctx context.Context, req *ListProductsReq) (*CatalogView, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	Featured(ctx context.Context, limit int) ([]domain.Product, error)
	Categories(ctx context.Context) (*CategoriesView, error)
	SelectCategory(ctx context.Context, category domain.Category) error

	GetCart(ctx context.Context) (*CartView, error)
	AddToCart(ctx context.Context, productID int64) (*CartView, error)
	RemoveFromCart(ctx context.Context, productID int64) (*CartView, error)
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context) (*CheckoutRes, error)

	AddProduct(ctx context.Context, draft domain.ProductDraft) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (*UpdateProductRes, error)
	DeleteProduct(ctx context.Context, productID int64) error

	Snapshot(ctx context.Context) (store.State, error)
}

// PreferenceUC управляет флагом тёмной темы для сессии.
type PreferenceUC interface {
	GetTheme(ctx context.Context, sessionID string) (*ThemePreference, error)
	SetTheme(ctx context.Context, pref *ThemePreference) error
}

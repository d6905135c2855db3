package http

import (
	"encoding/json"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/internal/usecase"
)

// Цены во всех ответах передаются строками с двумя знаками после запятой.

type ProductResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       string `json:"price" example:"250.00"`
	ImageURL    string `json:"image_url"`
}

type CatalogResponse struct {
	Category string            `json:"category"`
	Products []ProductResponse `json:"products"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Selected   string   `json:"selected"`
}

type CartItemResponse struct {
	ProductResponse
	Quantity int    `json:"quantity"`
	Subtotal string `json:"subtotal" example:"500.00"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Count int                `json:"count"`
	Total string             `json:"total" example:"0.00"`
}

type CheckoutResponse struct {
	ConfirmationID string             `json:"confirmation_id"`
	Message        string             `json:"message"`
	Total          string             `json:"total"`
	Items          []CartItemResponse `json:"items"`
}

type ThemeResponse struct {
	SessionID string `json:"session_id"`
	Dark      bool   `json:"dark"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type SelectCategoryRequest struct {
	Category string `json:"category" example:"panels"`
}

type AddToCartRequest struct {
	ProductID int64 `json:"product_id" example:"1"`
}

// ProductRequest — тело создания и обновления продукта. Цена принимается числом или строкой.
type ProductRequest struct {
	Name        string      `json:"name"`
	Category    string      `json:"category" example:"panels"`
	Description string      `json:"description"`
	Price       json.Number `json:"price" swaggertype:"string" example:"599.99"`
	ImageURL    string      `json:"image_url"`
}

type ThemeRequest struct {
	Dark bool `json:"dark"`
}

// toDraft разбирает цену; остальные поля проверяет валидатор стора.
func (p *ProductRequest) toDraft() (domain.ProductDraft, error) {
	price, err := parsePrice(p.Price.String())
	if err != nil {
		return domain.ProductDraft{}, err
	}

	return domain.NewProductDraft(p.Name, domain.Category(p.Category), p.Description, price, p.ImageURL), nil
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category.String(),
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		ImageURL:    p.ImageURL,
	}
}

func toProductsResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}
	return res
}

func toCartItemsResponse(items []domain.CartItem) []CartItemResponse {
	res := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, CartItemResponse{
			ProductResponse: toProductResponse(item.Product),
			Quantity:        item.Quantity,
			Subtotal:        item.Subtotal().StringFixed(2),
		})
	}
	return res
}

func toCartResponse(v *usecase.CartView) CartResponse {
	return CartResponse{
		Items: toCartItemsResponse(v.Items),
		Count: v.Count,
		Total: v.Total.StringFixed(2),
	}
}

func toCatalogResponse(v *usecase.CatalogView) CatalogResponse {
	return CatalogResponse{
		Category: v.Category.String(),
		Products: toProductsResponse(v.Products),
	}
}

func toCategoriesResponse(v *usecase.CategoriesView) CategoriesResponse {
	categories := make([]string, 0, len(v.Categories))
	for _, c := range v.Categories {
		categories = append(categories, c.String())
	}

	return CategoriesResponse{
		Categories: categories,
		Selected:   v.Selected.String(),
	}
}

func toCheckoutResponse(v *usecase.CheckoutRes) CheckoutResponse {
	return CheckoutResponse{
		ConfirmationID: v.ConfirmationID,
		Message:        v.Message,
		Total:          v.Total.StringFixed(2),
		Items:          toCartItemsResponse(v.Items),
	}
}

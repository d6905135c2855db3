package http

import (
	"net/http"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/internal/usecase"
	"github.com/DRSN-tech/solar-store/pkg/logger"
)

const defaultFeaturedLimit = 3

type StorefrontHandler struct {
	storefront usecase.StorefrontUC
	logger     logger.Logger
}

func NewStorefrontHandler(storefront usecase.StorefrontUC, logger logger.Logger) *StorefrontHandler {
	return &StorefrontHandler{storefront: storefront, logger: logger}
}

// listProducts
//
//	@Summary		Каталог товаров
//	@Description	Возвращает каталог, отфильтрованный по категории. Без параметра используется выбранная категория.
//	@Tags			products
//	@Produce		json
//	@Param			category	query		string	false	"Категория или all"
//	@Success		200			{object}	CatalogResponse
//	@Failure		400			{object}	ErrorResponse	"Неизвестная категория"
//	@Router			/products [get]
func (s *StorefrontHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.URL.Query().Get("category"))

	catalog, err := s.storefront.ListProducts(r.Context(), usecase.NewListProductsReq(category))
	if err != nil {
		s.logger.Warnf("list products: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCatalogResponse(catalog))
}

// featured
//
//	@Summary		Избранные товары
//	@Description	Первые limit товаров каталога для главной страницы
//	@Tags			products
//	@Produce		json
//	@Param			limit	query		int	false	"Количество, по умолчанию 3"
//	@Success		200		{array}		ProductResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/products/featured [get]
func (s *StorefrontHandler) featured(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, defaultFeaturedLimit)
	if err != nil {
		WriteError(w, err)
		return
	}

	products, err := s.storefront.Featured(r.Context(), limit)
	if err != nil {
		s.logger.Warnf("featured: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductsResponse(products))
}

// getProduct
//
//	@Summary	Товар по id
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (s *StorefrontHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := s.storefront.GetProduct(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// categories
//
//	@Summary	Категории
//	@Tags		categories
//	@Produce	json
//	@Success	200	{object}	CategoriesResponse
//	@Router		/categories [get]
func (s *StorefrontHandler) categories(w http.ResponseWriter, r *http.Request) {
	view, err := s.storefront.Categories(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoriesResponse(view))
}

// selectCategory
//
//	@Summary	Выбор категории фильтра
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		body	body		SelectCategoryRequest	true	"Категория"
//	@Success	200		{object}	CategoriesResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/categories/selected [put]
func (s *StorefrontHandler) selectCategory(w http.ResponseWriter, r *http.Request) {
	var req SelectCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if err := s.storefront.SelectCategory(r.Context(), domain.Category(req.Category)); err != nil {
		s.logger.Warnf("select category %q: %v", req.Category, err)
		WriteError(w, err)
		return
	}

	view, err := s.storefront.Categories(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoriesResponse(view))
}

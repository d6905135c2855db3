package http

import (
	"net/http"

	"github.com/DRSN-tech/solar-store/internal/usecase"
	"github.com/DRSN-tech/solar-store/pkg/logger"
)

type CartHandler struct {
	storefront usecase.StorefrontUC
	logger     logger.Logger
}

func NewCartHandler(storefront usecase.StorefrontUC, logger logger.Logger) *CartHandler {
	return &CartHandler{storefront: storefront, logger: logger}
}

// getCart
//
//	@Summary	Корзина
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	CartResponse
//	@Router		/cart [get]
func (c *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := c.storefront.GetCart(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(cart))
}

// addItem
//
//	@Summary		Добавить товар в корзину
//	@Description	Повторное добавление увеличивает количество в существующей строке
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AddToCartRequest	true	"ID товара каталога"
//	@Success		200		{object}	CartResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse	"Товара нет в каталоге"
//	@Router			/cart/items [post]
func (c *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	cart, err := c.storefront.AddToCart(r.Context(), req.ProductID)
	if err != nil {
		c.logger.Warnf("add to cart: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(cart))
}

// removeItem
//
//	@Summary		Удалить строку корзины
//	@Description	Отсутствующая строка не является ошибкой
//	@Tags			cart
//	@Param			id	path	int	true	"ID товара"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Router			/cart/items/{id} [delete]
func (c *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := c.storefront.RemoveFromCart(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// clear
//
//	@Summary	Очистить корзину
//	@Tags		cart
//	@Success	204
//	@Router		/cart [delete]
func (c *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := c.storefront.ClearCart(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// checkout
//
//	@Summary		Оформить заказ
//	@Description	Подтверждает заказ и очищает корзину. Оплата не проводится.
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CheckoutResponse
//	@Failure		400	{object}	ErrorResponse	"Корзина пуста"
//	@Router			/cart/checkout [post]
func (c *CartHandler) checkout(w http.ResponseWriter, r *http.Request) {
	res, err := c.storefront.Checkout(r.Context())
	if err != nil {
		c.logger.Warnf("checkout: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCheckoutResponse(res))
}

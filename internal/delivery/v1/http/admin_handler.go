package http

import (
	"fmt"
	"net/http"

	"github.com/DRSN-tech/solar-store/internal/usecase"
	"github.com/DRSN-tech/solar-store/pkg/e"
	"github.com/DRSN-tech/solar-store/pkg/logger"
)

// AdminHandler — управление каталогом. Аутентификации нет.
type AdminHandler struct {
	storefront usecase.StorefrontUC
	logger     logger.Logger
}

func NewAdminHandler(storefront usecase.StorefrontUC, logger logger.Logger) *AdminHandler {
	return &AdminHandler{storefront: storefront, logger: logger}
}

// createProduct
//
//	@Summary		Добавить товар
//	@Description	ID назначается сервером и никогда не переиспользуется
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ProductRequest	true	"Товар"
//	@Success		201		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/admin/products [post]
func (a *AdminHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := a.storefront.AddProduct(r.Context(), draft)
	if err != nil {
		a.logger.Warnf("add product: %v", err)
		WriteError(w, err)
		return
	}

	a.logger.Infof("Product %d added: %s", product.ID, product.Name)
	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// updateProduct
//
//	@Summary	Изменить товар
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"ID товара"
//	@Param		body	body		ProductRequest	true	"Товар"
//	@Success	200		{object}	ProductResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/admin/products/{id} [put]
func (a *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req ProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		a.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := a.storefront.UpdateProduct(r.Context(), draft.WithID(id))
	if err != nil {
		a.logger.Warnf("update product %d: %v", id, err)
		WriteError(w, err)
		return
	}
	if res.NotFound {
		WriteError(w, e.Wrap(fmt.Sprintf("id %d", id), e.ErrProductNotFound))
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(res.Product))
}

// deleteProduct
//
//	@Summary		Удалить товар
//	@Description	Строки корзины с этим товаром сохраняются
//	@Tags			admin
//	@Param			id	path	int	true	"ID товара"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Router			/admin/products/{id} [delete]
func (a *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := a.storefront.DeleteProduct(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	a.logger.Infof("Product %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

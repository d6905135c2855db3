package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/internal/store"
	"github.com/DRSN-tech/solar-store/pkg/e"
	"github.com/DRSN-tech/solar-store/pkg/logger"
	"github.com/google/uuid"
)

const checkoutMessage = "Thank you for your purchase! Your order has been placed."

type command struct {
	fn   func(st *store.Store)
	err  error
	done chan struct{}
}

// Storefront — единственный владелец стора. Все команды выполняются по одной
// в собственной горутине, наблюдатели вызываются там же.
type Storefront struct {
	store  *store.Store
	logger logger.Logger

	cmds      chan *command
	stop      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

func NewStorefront(st *store.Store, logger logger.Logger, observers ...store.Observer) *Storefront {
	for _, obs := range observers {
		st.Subscribe(obs)
	}

	return &Storefront{
		store:  st,
		logger: logger,
		cmds:   make(chan *command),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start запускает цикл обработки команд.
func (s *Storefront) Start() {
	s.startOnce.Do(func() {
		go s.run()
	})
}

// Stop останавливает цикл. Команды после остановки возвращают e.ErrStorefrontStopped.
func (s *Storefront) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.startOnce.Do(func() {
		close(s.done)
	})
	<-s.done
}

func (s *Storefront) run() {
	defer close(s.done)

	for {
		select {
		case cmd := <-s.cmds:
			s.exec(cmd)
		case <-s.stop:
			s.logger.Infof("Storefront stopped")
			return
		}
	}
}

// exec выполняет команду. Паника превращается в ошибку команды, цикл продолжает работу.
func (s *Storefront) exec(cmd *command) {
	defer close(cmd.done)
	defer func() {
		if r := recover(); r != nil {
			cmd.err = fmt.Errorf("%w: storefront command panicked: %v", e.ErrInternalServerError, r)
			s.logger.Errorf(cmd.err, "storefront command panicked")
		}
	}()

	cmd.fn(s.store)
}

// do передаёт команду владельцу и ждёт её завершения. Принятая команда выполняется
// до конца даже при отмене ctx, вызывающий в этом случае получает ctx.Err().
func (s *Storefront) do(ctx context.Context, fn func(st *store.Store)) error {
	cmd := &command{fn: fn, done: make(chan struct{})}

	select {
	case s.cmds <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return e.ErrStorefrontStopped
	}

	select {
	case <-cmd.done:
		return cmd.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListProducts возвращает каталог, отфильтрованный по запрошенной или текущей категории.
func (s *Storefront) ListProducts(ctx context.Context, req *ListProductsReq) (*CatalogView, error) {
	const op = "Storefront.ListProducts"

	if req.Category != "" {
		if err := domain.ValidateCategoryFilter(req.Category); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	var res *CatalogView
	err := s.do(ctx, func(st *store.Store) {
		if req.Category == "" {
			res = NewCatalogView(st.FilteredProducts(), st.SelectedCategory())
			return
		}
		res = NewCatalogView(st.FilterBy(req.Category), req.Category)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

// GetProduct ищет продукт каталога.
func (s *Storefront) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	const op = "Storefront.GetProduct"

	var (
		product domain.Product
		found   bool
	)
	if err := s.do(ctx, func(st *store.Store) {
		product, found = st.Product(id)
	}); err != nil {
		return domain.Product{}, e.Wrap(op, err)
	}

	if !found {
		return domain.Product{}, e.Wrap(fmt.Sprintf("%s: id %d", op, id), e.ErrProductNotFound)
	}

	return product, nil
}

// Featured возвращает первые limit продуктов каталога.
func (s *Storefront) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	var res []domain.Product
	if err := s.do(ctx, func(st *store.Store) {
		res = st.Featured(limit)
	}); err != nil {
		return nil, e.Wrap("Storefront.Featured", err)
	}

	return res, nil
}

// Categories возвращает значения фильтра и выбранную категорию.
func (s *Storefront) Categories(ctx context.Context) (*CategoriesView, error) {
	var selected domain.Category
	if err := s.do(ctx, func(st *store.Store) {
		selected = st.SelectedCategory()
	}); err != nil {
		return nil, e.Wrap("Storefront.Categories", err)
	}

	return NewCategoriesView(selected), nil
}

// SelectCategory меняет фильтр каталога.
func (s *Storefront) SelectCategory(ctx context.Context, category domain.Category) error {
	const op = "Storefront.SelectCategory"

	var opErr error
	if err := s.do(ctx, func(st *store.Store) {
		opErr = st.SetSelectedCategory(category)
	}); err != nil {
		return e.Wrap(op, err)
	}
	if opErr != nil {
		return e.Wrap(op, opErr)
	}

	return nil
}

// GetCart возвращает корзину с итогом.
func (s *Storefront) GetCart(ctx context.Context) (*CartView, error) {
	var res *CartView
	if err := s.do(ctx, func(st *store.Store) {
		res = cartView(st)
	}); err != nil {
		return nil, e.Wrap("Storefront.GetCart", err)
	}

	return res, nil
}

// AddToCart добавляет в корзину продукт каталога по id.
func (s *Storefront) AddToCart(ctx context.Context, productID int64) (*CartView, error) {
	const op = "Storefront.AddToCart"

	var (
		res   *CartView
		found bool
	)
	if err := s.do(ctx, func(st *store.Store) {
		var product domain.Product
		if product, found = st.Product(productID); !found {
			return
		}
		st.AddToCart(product)
		res = cartView(st)
	}); err != nil {
		return nil, e.Wrap(op, err)
	}

	if !found {
		return nil, e.Wrap(fmt.Sprintf("%s: id %d", op, productID), e.ErrProductNotFound)
	}

	return res, nil
}

// RemoveFromCart удаляет строку корзины. Отсутствующая строка не является ошибкой.
func (s *Storefront) RemoveFromCart(ctx context.Context, productID int64) (*CartView, error) {
	var res *CartView
	if err := s.do(ctx, func(st *store.Store) {
		st.RemoveFromCart(productID)
		res = cartView(st)
	}); err != nil {
		return nil, e.Wrap("Storefront.RemoveFromCart", err)
	}

	return res, nil
}

// ClearCart очищает корзину.
func (s *Storefront) ClearCart(ctx context.Context) error {
	if err := s.do(ctx, func(st *store.Store) {
		st.ClearCart()
	}); err != nil {
		return e.Wrap("Storefront.ClearCart", err)
	}

	return nil
}

// Checkout подтверждает заказ и очищает корзину. Оплата не проводится.
func (s *Storefront) Checkout(ctx context.Context) (*CheckoutRes, error) {
	const op = "Storefront.Checkout"

	var res *CheckoutRes
	if err := s.do(ctx, func(st *store.Store) {
		if st.CartCount() == 0 {
			return
		}
		res = NewCheckoutRes(uuid.NewString(), checkoutMessage, st.CartTotal(), st.Cart())
		st.ClearCart()
	}); err != nil {
		return nil, e.Wrap(op, err)
	}

	if res == nil {
		return nil, e.Wrap(op, e.ErrEmptyCart)
	}

	s.logger.Infof("Checkout %s: %d line(s), total %s", res.ConfirmationID, len(res.Items), res.Total.StringFixed(2))
	return res, nil
}

// AddProduct добавляет продукт в каталог.
func (s *Storefront) AddProduct(ctx context.Context, draft domain.ProductDraft) (domain.Product, error) {
	const op = "Storefront.AddProduct"

	var (
		product domain.Product
		opErr   error
	)
	if err := s.do(ctx, func(st *store.Store) {
		product, opErr = st.AddProduct(draft)
	}); err != nil {
		return domain.Product{}, e.Wrap(op, err)
	}
	if opErr != nil {
		return domain.Product{}, e.Wrap(op, opErr)
	}

	return product, nil
}

// UpdateProduct заменяет продукт каталога. Отсутствие продукта отражается в NotFound.
func (s *Storefront) UpdateProduct(ctx context.Context, product domain.Product) (*UpdateProductRes, error) {
	const op = "Storefront.UpdateProduct"

	var (
		found bool
		opErr error
	)
	if err := s.do(ctx, func(st *store.Store) {
		if opErr = st.UpdateProduct(product); opErr != nil {
			return
		}
		_, found = st.Product(product.ID)
	}); err != nil {
		return nil, e.Wrap(op, err)
	}
	if opErr != nil {
		return nil, e.Wrap(op, opErr)
	}

	return NewUpdateProductRes(product, !found), nil
}

// DeleteProduct удаляет продукт из каталога; корзина не меняется.
func (s *Storefront) DeleteProduct(ctx context.Context, productID int64) error {
	if err := s.do(ctx, func(st *store.Store) {
		st.DeleteProduct(productID)
	}); err != nil {
		return e.Wrap("Storefront.DeleteProduct", err)
	}

	return nil
}

// Snapshot возвращает полное состояние стора.
func (s *Storefront) Snapshot(ctx context.Context) (store.State, error) {
	var res store.State
	if err := s.do(ctx, func(st *store.Store) {
		res = st.Snapshot()
	}); err != nil {
		return store.State{}, e.Wrap("Storefront.Snapshot", err)
	}

	return res, nil
}

func cartView(st *store.Store) *CartView {
	return NewCartView(st.Cart(), st.CartTotal())
}

// Package store содержит состояние витрины: каталог, корзину и выбранную категорию.
//
// Store не потокобезопасен: им владеет один логический владелец (см. usecase.Storefront),
// все мутации выполняются последовательно и уведомляют наблюдателей синхронно.
package store

import (
	"fmt"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/pkg/e"
	"github.com/shopspring/decimal"
)

type subscription struct {
	id       uint64
	observer Observer
}

// Store хранит каталог, корзину и фильтр категорий.
type Store struct {
	products []domain.Product
	cart     []domain.CartItem
	selected domain.Category

	// Наибольший когда-либо выданный или засеянный идентификатор.
	lastID int64

	subs   []subscription
	nextID uint64
}

// New создаёт стор с сидом каталога, пустой корзиной и фильтром all.
func New(seed []domain.Product) (*Store, error) {
	const op = "store.New"

	s := &Store{
		products: make([]domain.Product, 0, len(seed)),
		cart:     make([]domain.CartItem, 0),
		selected: domain.CategoryAll,
	}

	seen := make(map[int64]struct{}, len(seed))
	for _, p := range seed {
		if p.ID <= 0 {
			return nil, e.Wrap(fmt.Sprintf("%s: product %q", op, p.Name), e.ErrInvalidProductID)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, e.Wrap(fmt.Sprintf("%s: id %d", op, p.ID), e.ErrDuplicateProductID)
		}
		if err := domain.ValidateProduct(p); err != nil {
			return nil, e.Wrap(fmt.Sprintf("%s: id %d", op, p.ID), err)
		}

		seen[p.ID] = struct{}{}
		s.products = append(s.products, p)
		s.lastID = max(s.lastID, p.ID)
	}

	return s, nil
}

// Subscribe регистрирует наблюдателя. Возвращаемая функция снимает подписку и идемпотентна.
func (s *Store) Subscribe(observer Observer) func() {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, observer: observer})

	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// AddToCart добавляет продукт в корзину. Повторное добавление увеличивает количество,
// не трогая поля, скопированные при первом добавлении. Принадлежность к каталогу не проверяется.
func (s *Store) AddToCart(product domain.Product) {
	if i := s.cartIndex(product.ID); i >= 0 {
		s.cart[i].Quantity++
	} else {
		s.cart = append(s.cart, domain.NewCartItem(product))
	}

	s.notify(OpAddToCart, product.ID)
}

// RemoveFromCart удаляет строку корзины целиком. Отсутствующий id: no-op.
func (s *Store) RemoveFromCart(productID int64) {
	i := s.cartIndex(productID)
	if i < 0 {
		return
	}

	s.cart = append(s.cart[:i:i], s.cart[i+1:]...)
	s.notify(OpRemoveFromCart, productID)
}

// ClearCart очищает корзину.
func (s *Store) ClearCart() {
	if len(s.cart) == 0 {
		return
	}

	s.cart = make([]domain.CartItem, 0)
	s.notify(OpClearCart, 0)
}

// AddProduct валидирует черновик, назначает новый идентификатор и добавляет продукт в конец каталога.
// Идентификаторы выдаются монотонно и не переиспользуются после удаления.
func (s *Store) AddProduct(draft domain.ProductDraft) (domain.Product, error) {
	if err := domain.ValidateDraft(draft); err != nil {
		return domain.Product{}, e.Wrap("Store.AddProduct", err)
	}

	s.lastID++
	product := draft.WithID(s.lastID)
	s.products = append(s.products, product)
	s.notify(OpAddProduct, product.ID)

	return product, nil
}

// UpdateProduct заменяет продукт с тем же id на его позиции. Отсутствующий id: no-op.
// Строки корзины не меняются.
func (s *Store) UpdateProduct(product domain.Product) error {
	i := s.productIndex(product.ID)
	if i < 0 {
		return nil
	}

	if err := domain.ValidateProduct(product); err != nil {
		return e.Wrap("Store.UpdateProduct", err)
	}

	s.products[i] = product
	s.notify(OpUpdateProduct, product.ID)

	return nil
}

// DeleteProduct удаляет продукт из каталога. Корзина не затрагивается.
func (s *Store) DeleteProduct(productID int64) {
	i := s.productIndex(productID)
	if i < 0 {
		return
	}

	s.products = append(s.products[:i:i], s.products[i+1:]...)
	s.notify(OpDeleteProduct, productID)
}

// SetSelectedCategory меняет фильтр каталога. Неизвестные значения отклоняются, фильтр не меняется.
func (s *Store) SetSelectedCategory(category domain.Category) error {
	if err := domain.ValidateCategoryFilter(category); err != nil {
		return e.Wrap("Store.SetSelectedCategory", err)
	}

	if s.selected == category {
		return nil
	}

	s.selected = category
	s.notify(OpSetSelectedCategory, 0)

	return nil
}

// Products возвращает копию каталога в порядке добавления.
func (s *Store) Products() []domain.Product {
	return cloneProducts(s.products)
}

// Product ищет продукт каталога по id.
func (s *Store) Product(id int64) (domain.Product, bool) {
	if i := s.productIndex(id); i >= 0 {
		return s.products[i], true
	}

	return domain.Product{}, false
}

// Featured возвращает первые n продуктов каталога.
func (s *Store) Featured(n int) []domain.Product {
	n = min(max(n, 0), len(s.products))
	return cloneProducts(s.products[:n])
}

// Cart возвращает копию корзины в порядке добавления.
func (s *Store) Cart() []domain.CartItem {
	return cloneCart(s.cart)
}

// CartCount возвращает число строк корзины.
func (s *Store) CartCount() int {
	return len(s.cart)
}

// SelectedCategory возвращает текущий фильтр.
func (s *Store) SelectedCategory() domain.Category {
	return s.selected
}

// FilteredProducts вычисляет каталог с учётом выбранной категории при каждом вызове.
func (s *Store) FilteredProducts() []domain.Product {
	return s.FilterBy(s.selected)
}

// FilterBy возвращает продукты указанной категории (all означает весь каталог) без изменения фильтра.
func (s *Store) FilterBy(category domain.Category) []domain.Product {
	if category == domain.CategoryAll {
		return s.Products()
	}

	res := make([]domain.Product, 0)
	for _, p := range s.products {
		if category.Matches(p.Category) {
			res = append(res, p)
		}
	}

	return res
}

// CartTotal возвращает сумму price*quantity по корзине, округлённую до двух знаков.
func (s *Store) CartTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.cart {
		total = total.Add(item.Subtotal())
	}

	return total.Round(2)
}

// Snapshot возвращает копию всего наблюдаемого состояния.
func (s *Store) Snapshot() State {
	return State{
		Products:         s.Products(),
		Cart:             s.Cart(),
		SelectedCategory: s.selected,
	}
}

func (s *Store) notify(op Op, productID int64) {
	if len(s.subs) == 0 {
		return
	}

	// копия списка: наблюдатель может отписаться во время рассылки
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)

	for _, sub := range subs {
		sub.observer(Event{Op: op, ProductID: productID, State: s.Snapshot()})
	}
}

func (s *Store) cartIndex(id int64) int {
	for i, item := range s.cart {
		if item.ID == id {
			return i
		}
	}

	return -1
}

func (s *Store) productIndex(id int64) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}

	return -1
}

func cloneProducts(src []domain.Product) []domain.Product {
	res := make([]domain.Product, len(src))
	copy(res, src)
	return res
}

func cloneCart(src []domain.CartItem) []domain.CartItem {
	res := make([]domain.CartItem, len(src))
	copy(res, src)
	return res
}

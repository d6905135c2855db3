package store

import "github.com/DRSN-tech/solar-store/internal/domain"

// Op — имя операции, изменившей состояние стора.
type Op string

const (
	OpAddToCart           Op = "add_to_cart"
	OpRemoveFromCart      Op = "remove_from_cart"
	OpClearCart           Op = "clear_cart"
	OpAddProduct          Op = "add_product"
	OpUpdateProduct       Op = "update_product"
	OpDeleteProduct       Op = "delete_product"
	OpSetSelectedCategory Op = "set_selected_category"
)

// State — снимок наблюдаемого состояния стора. Срезы принадлежат получателю.
type State struct {
	Products         []domain.Product
	Cart             []domain.CartItem
	SelectedCategory domain.Category
}

// Event передаётся наблюдателям после каждой мутации, изменившей состояние.
// ProductID равен 0 для операций без продукта (clear_cart, set_selected_category).
type Event struct {
	Op        Op
	ProductID int64
	State     State
}

// Observer получает события синхронно, в потоке владельца стора.
// Наблюдатель не должен блокироваться и не должен вызывать мутации стора.
type Observer func(Event)

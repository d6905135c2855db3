package domain

import "github.com/shopspring/decimal"

// CartItem — строка корзины. Поля продукта копируются в момент первого добавления
// и не отслеживают последующие правки или удаление продукта в каталоге.
type CartItem struct {
	Product
	Quantity int
}

func NewCartItem(product Product) CartItem {
	return CartItem{
		Product:  product,
		Quantity: 1,
	}
}

// Subtotal возвращает цену строки без округления.
func (c CartItem) Subtotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

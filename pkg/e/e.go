package e

import "fmt"

var (
	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnknownSeedSource    = fmt.Errorf("unknown seed source")

	// Ошибки сида каталога
	ErrDuplicateProductID = fmt.Errorf("duplicate product id in seed")
	ErrInvalidProductID   = fmt.Errorf("product id must be positive")

	// Ошибки владельца стора
	ErrStorefrontStopped = fmt.Errorf("storefront is stopped")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrInvalidJSON      = fmt.Errorf("invalid json body")
	ErrInvalidID        = fmt.Errorf("invalid id")
	ErrInvalidPrice     = fmt.Errorf("invalid price")
	ErrPricePrecision   = fmt.Errorf("price must have at most 2 decimal places")
	ErrMissingFields    = fmt.Errorf("missing required fields")
	ErrEmptyCart        = fmt.Errorf("cart is empty")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

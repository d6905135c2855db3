package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError описывает одно нарушенное правило.
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError возвращается операциями записи при некорректных входных данных.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}

	return "validation failed: " + strings.Join(parts, ", ")
}

// IsValidationError проверяет, содержит ли цепочка ошибок ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// decimal.Decimal сравнивается как float64, чтобы работали gte/lte
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})

	return v
}

// ValidateProduct проверяет поля продукта (идентификатор не проверяется).
func ValidateProduct(p Product) error {
	return toValidationError(validate.Struct(p))
}

// ValidateDraft проверяет черновик нового продукта.
func ValidateDraft(d ProductDraft) error {
	return toValidationError(validate.Struct(d))
}

// ValidateCategoryFilter проверяет значение фильтра каталога.
func ValidateCategoryFilter(c Category) error {
	if !c.ValidFilter() {
		return NewValidationError(FieldError{Field: "category", Rule: "category"})
	}

	return nil
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: strings.ToLower(fe.Field()), Rule: fe.Tag()})
	}

	return NewValidationError(fields...)
}

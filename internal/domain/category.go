package domain

// Category описывает категорию продукта каталога.
type Category string

const (
	// CategoryAll означает «все категории». Продукту не присваивается.
	CategoryAll Category = "all"

	CategoryPanels            Category = "panels"
	CategoryBatteries         Category = "batteries"
	CategoryInverters         Category = "inverters"
	CategoryGenerators        Category = "generators"
	CategoryStreetlights      Category = "streetlights"
	CategoryChargeControllers Category = "charge-controllers"
)

var categories = []Category{
	CategoryPanels,
	CategoryBatteries,
	CategoryInverters,
	CategoryGenerators,
	CategoryStreetlights,
	CategoryChargeControllers,
}

// Categories возвращает допустимые категории продуктов в порядке отображения.
func Categories() []Category {
	res := make([]Category, len(categories))
	copy(res, categories)
	return res
}

// Valid сообщает, является ли значение категорией продукта.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}

	return false
}

// ValidFilter сообщает, можно ли использовать значение как фильтр каталога.
func (c Category) ValidFilter() bool {
	return c == CategoryAll || c.Valid()
}

// Matches проверяет, проходит ли категория продукта через фильтр.
func (c Category) Matches(productCategory Category) bool {
	return c == CategoryAll || c == productCategory
}

func (c Category) String() string {
	return string(c)
}

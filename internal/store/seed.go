package store

import (
	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultSeed возвращает встроенный каталог солнечного оборудования (id 1..6).
func DefaultSeed() []domain.Product {
	return []domain.Product{
		domain.NewProduct(1,
			"High-Efficiency Monocrystalline Panel",
			domain.CategoryPanels,
			"A durable and highly efficient solar panel with excellent low-light performance.",
			decimal.NewFromInt(250),
			"https://placehold.co/400x300/a3e635/000000.png?text=Solar+Panel",
		),
		domain.NewProduct(2,
			"Lithium-Ion Solar Battery (5 kWh)",
			domain.CategoryBatteries,
			"Long-lasting and reliable battery for residential energy storage.",
			decimal.NewFromInt(1800),
			"https://placehold.co/400x300/fde047/000000.png?text=Solar+Battery",
		),
		domain.NewProduct(3,
			"Pure Sine Wave Inverter (3 kW)",
			domain.CategoryInverters,
			"Converts DC power from panels to AC power for household use with high efficiency.",
			decimal.NewFromInt(550),
			"https://placehold.co/400x300/f87171/000000.png?text=Inverter",
		),
		domain.NewProduct(4,
			"Deep Cycle AGM Battery (100 Ah)",
			domain.CategoryBatteries,
			"Robust and maintenance-free battery for off-grid systems and backups.",
			decimal.NewFromInt(320),
			"https://placehold.co/400x300/fde047/000000.png?text=AGM+Battery",
		),
		domain.NewProduct(5,
			"Polycrystalline Solar Panel (300W)",
			domain.CategoryPanels,
			"An economical option for solar power generation with good performance.",
			decimal.NewFromInt(180),
			"https://placehold.co/400x300/a3e635/000000.png?text=Poly+Panel",
		),
		domain.NewProduct(6,
			"Hybrid Solar Inverter (5 kW)",
			domain.CategoryInverters,
			"Combines a charge controller and an inverter for simplified system setup.",
			decimal.NewFromInt(900),
			"https://placehold.co/400x300/f87171/000000.png?text=Hybrid+Inverter",
		),
	}
}

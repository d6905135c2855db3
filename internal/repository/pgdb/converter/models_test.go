package converter

import (
	"errors"
	"testing"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/pkg/e"
)

func TestCatalogSeedModelToEntity(t *testing.T) {
	m := CatalogSeedModel{
		ID:       7,
		Name:     "MPPT Charge Controller",
		Category: "charge-controllers",
		Price:    "129.90",
		ImageURL: "https://example.com/mppt.png",
	}

	p, err := m.ToEntity()
	if err != nil {
		t.Fatalf("ToEntity: %v", err)
	}
	if p.ID != 7 || p.Category != domain.CategoryChargeControllers {
		t.Fatalf("unexpected product: %+v", p)
	}
	if p.Price.StringFixed(2) != "129.90" {
		t.Fatalf("expected 129.90, got %s", p.Price.StringFixed(2))
	}

	m.Price = "n/a"
	if _, err := m.ToEntity(); !errors.Is(err, e.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/pkg/e"
)

const catalogJSON = `[
  {"id": 10, "name": "Solar Street Light", "category": "streetlights", "price": "89.50", "image_url": "https://example.com/l.png"},
  {"id": 11, "name": "Portable Generator", "category": "generators", "description": "1 kW", "price": 640}
]`

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(catalogJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	products, err := NewSeedRepo(path).LoadSeed(context.Background())
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	if products[0].ID != 10 || products[0].Category != domain.CategoryStreetlights || products[0].Price.StringFixed(2) != "89.50" {
		t.Errorf("unexpected first product: %+v", products[0])
	}
	if products[1].Price.StringFixed(2) != "640.00" || products[1].Description != "1 kW" {
		t.Errorf("unexpected second product: %+v", products[1])
	}
}

func TestLoadSeedMissingFile(t *testing.T) {
	_, err := NewSeedRepo(filepath.Join(t.TempDir(), "nope.json")).LoadSeed(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	if _, err := Decode([]byte(`{"id": 1}`)); !errors.Is(err, e.ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
}

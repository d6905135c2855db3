package pgdb

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/pkg/e"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
)

var seedColumns = []string{"id", "name", "category", "description", "price", "image_url"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock
}

func TestSeedRepoLoadSeed(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery("SELECT id, name, category, description, price::text AS price, image_url").
		WillReturnRows(pgxmock.NewRows(seedColumns).
			AddRow(int64(1), "Solar Panel 400W", "panels", "Mono", "599.99", "/img/1.png").
			AddRow(int64(4), "Lithium Battery", "batteries", "", "4500.00", ""))

	products, err := NewSeedRepo(mock).LoadSeed(context.Background())
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != 1 || products[0].Category != domain.CategoryPanels ||
		!products[0].Price.Equal(decimal.RequireFromString("599.99")) {
		t.Errorf("unexpected first product: %+v", products[0])
	}
	if products[1].ID != 4 || products[1].Category != domain.CategoryBatteries {
		t.Errorf("unexpected second product: %+v", products[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSeedRepoInvalidPrice(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery("FROM catalog_seed").
		WillReturnRows(pgxmock.NewRows(seedColumns).
			AddRow(int64(1), "Broken", "panels", "", "n/a", ""))

	_, err := NewSeedRepo(mock).LoadSeed(context.Background())
	if !errors.Is(err, e.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestSeedRepoQueryError(t *testing.T) {
	mock := newMock(t)
	queryErr := errors.New("relation \"catalog_seed\" does not exist")

	mock.ExpectQuery("FROM catalog_seed").WillReturnError(queryErr)

	_, err := NewSeedRepo(mock).LoadSeed(context.Background())
	if !errors.Is(err, queryErr) {
		t.Fatalf("expected query error, got %v", err)
	}
}

package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/internal/store"
	"github.com/DRSN-tech/solar-store/pkg/e"
	"github.com/DRSN-tech/solar-store/pkg/logger"
	"github.com/shopspring/decimal"
)

func newStorefront(t *testing.T, observers ...store.Observer) *Storefront {
	t.Helper()

	st, err := store.New(store.DefaultSeed())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	sf := NewStorefront(st, logger.Nop(), observers...)
	sf.Start()
	t.Cleanup(sf.Stop)

	return sf
}

func TestStorefrontCartFlow(t *testing.T) {
	ctx := context.Background()
	sf := newStorefront(t)

	if _, err := sf.AddToCart(ctx, 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	cart, err := sf.AddToCart(ctx, 1)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if cart.Count != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", cart)
	}
	if got := cart.Total.StringFixed(2); got != "500.00" {
		t.Fatalf("expected 500.00, got %s", got)
	}

	cart, err = sf.RemoveFromCart(ctx, 1)
	if err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	if cart.Count != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestStorefrontAddToCartUnknownProduct(t *testing.T) {
	sf := newStorefront(t)

	_, err := sf.AddToCart(context.Background(), 404)
	if !errors.Is(err, e.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestStorefrontCheckout(t *testing.T) {
	ctx := context.Background()
	sf := newStorefront(t)

	if _, err := sf.Checkout(ctx); !errors.Is(err, e.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	_, _ = sf.AddToCart(ctx, 2)
	_, _ = sf.AddToCart(ctx, 3)

	res, err := sf.Checkout(ctx)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if res.ConfirmationID == "" || res.Message == "" {
		t.Fatalf("expected acknowledgement, got %+v", res)
	}
	if got := res.Total.StringFixed(2); got != "2350.00" {
		t.Fatalf("expected 2350.00, got %s", got)
	}
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 lines in receipt, got %d", len(res.Items))
	}

	cart, _ := sf.GetCart(ctx)
	if cart.Count != 0 {
		t.Fatal("checkout must clear the cart")
	}
}

func TestStorefrontListProducts(t *testing.T) {
	ctx := context.Background()
	sf := newStorefront(t)

	view, err := sf.ListProducts(ctx, NewListProductsReq(domain.CategoryBatteries))
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(view.Products) != 2 || view.Category != domain.CategoryBatteries {
		t.Fatalf("unexpected view: %+v", view)
	}

	// явная категория не меняет фильтр стора
	view, _ = sf.ListProducts(ctx, NewListProductsReq(""))
	if view.Category != domain.CategoryAll || len(view.Products) != 6 {
		t.Fatalf("unexpected view: %+v", view)
	}

	if err := sf.SelectCategory(ctx, domain.CategoryInverters); err != nil {
		t.Fatalf("SelectCategory: %v", err)
	}
	view, _ = sf.ListProducts(ctx, NewListProductsReq(""))
	if view.Category != domain.CategoryInverters || len(view.Products) != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}

	if _, err := sf.ListProducts(ctx, NewListProductsReq("gadgets")); !domain.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := sf.SelectCategory(ctx, "gadgets"); !domain.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStorefrontCategories(t *testing.T) {
	sf := newStorefront(t)

	view, err := sf.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if view.Categories[0] != domain.CategoryAll || len(view.Categories) != 7 {
		t.Fatalf("unexpected categories: %+v", view.Categories)
	}
	if view.Selected != domain.CategoryAll {
		t.Fatalf("expected all, got %s", view.Selected)
	}
}

func TestStorefrontAdminFlow(t *testing.T) {
	ctx := context.Background()
	sf := newStorefront(t)

	if err := sf.DeleteProduct(ctx, 3); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	added, err := sf.AddProduct(ctx, domain.NewProductDraft("Solar Generator", domain.CategoryGenerators, "", decimal.NewFromInt(1200), ""))
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if added.ID != 7 {
		t.Fatalf("expected id 7, got %d", added.ID)
	}

	added.Price = decimal.NewFromInt(1100)
	res, err := sf.UpdateProduct(ctx, added)
	if err != nil || res.NotFound {
		t.Fatalf("UpdateProduct: %+v %v", res, err)
	}

	got, err := sf.GetProduct(ctx, 7)
	if err != nil || !got.Price.Equal(decimal.NewFromInt(1100)) {
		t.Fatalf("GetProduct: %+v %v", got, err)
	}

	res, err = sf.UpdateProduct(ctx, domain.NewProduct(3, "Gone", domain.CategoryInverters, "", decimal.NewFromInt(1), ""))
	if err != nil || !res.NotFound {
		t.Fatalf("expected NotFound for deleted product, got %+v %v", res, err)
	}

	if _, err := sf.GetProduct(ctx, 3); !errors.Is(err, e.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	if _, err := sf.AddProduct(ctx, domain.NewProductDraft("", "bad", "", decimal.NewFromInt(-1), "")); !domain.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStorefrontNotifiesObservers(t *testing.T) {
	ctx := context.Background()

	var ops []store.Op
	sf := newStorefront(t, func(ev store.Event) {
		ops = append(ops, ev.Op)
	})

	_, _ = sf.AddToCart(ctx, 1)
	_ = sf.ClearCart(ctx)

	// чтение через владельца гарантирует, что наблюдатели уже отработали
	if _, err := sf.Snapshot(ctx); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(ops) != 2 || ops[0] != store.OpAddToCart || ops[1] != store.OpClearCart {
		t.Fatalf("unexpected ops: %v", ops)
	}
}

func TestStorefrontSerializesConcurrentCommands(t *testing.T) {
	ctx := context.Background()
	sf := newStorefront(t)

	const workers, perWorker = 8, 25
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				if _, err := sf.AddToCart(ctx, 5); err != nil {
					t.Errorf("AddToCart: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	cart, err := sf.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if cart.Count != 1 || cart.Items[0].Quantity != workers*perWorker {
		t.Fatalf("expected one line with qty %d, got %+v", workers*perWorker, cart.Items)
	}
}

func TestStorefrontStopped(t *testing.T) {
	st, _ := store.New(store.DefaultSeed())
	sf := NewStorefront(st, logger.Nop())
	sf.Start()
	sf.Stop()
	sf.Stop()

	if _, err := sf.GetCart(context.Background()); !errors.Is(err, e.ErrStorefrontStopped) {
		t.Fatalf("expected ErrStorefrontStopped, got %v", err)
	}
}

func TestStorefrontStopWithoutStart(t *testing.T) {
	st, _ := store.New(store.DefaultSeed())
	sf := NewStorefront(st, logger.Nop())

	done := make(chan struct{})
	go func() {
		sf.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop without Start must not block")
	}
}

func TestStorefrontCanceledContext(t *testing.T) {
	st, _ := store.New(store.DefaultSeed())
	sf := NewStorefront(st, logger.Nop())
	// не запущен: команду никто не примет

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sf.GetCart(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStorefrontSurvivesObserverPanic(t *testing.T) {
	ctx := context.Background()
	sf := newStorefront(t, func(store.Event) {
		panic("boom")
	})

	res, err := sf.AddToCart(ctx, 1)
	if !errors.Is(err, e.ErrInternalServerError) || errors.Is(err, e.ErrProductNotFound) {
		t.Fatalf("panicked command must report an internal error, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected no result, got %+v", res)
	}

	cart, err := sf.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if cart.Count != 1 {
		t.Fatalf("mutation must be applied before observers run, got %+v", cart)
	}
}

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DRSN-tech/solar-store/internal/domain"
	"github.com/DRSN-tech/solar-store/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserve(t *testing.T) {
	m := New("test")

	state := store.State{
		Products: make([]domain.Product, 6),
		Cart: []domain.CartItem{
			{Product: domain.Product{ID: 1}, Quantity: 2},
			{Product: domain.Product{ID: 3}, Quantity: 1},
		},
	}

	m.Observe(store.Event{Op: store.OpAddToCart, ProductID: 1, State: state})
	m.Observe(store.Event{Op: store.OpAddToCart, ProductID: 3, State: state})
	m.Observe(store.Event{Op: store.OpClearCart, State: store.State{Products: state.Products}})

	if got := testutil.ToFloat64(m.mutations.WithLabelValues("add_to_cart")); got != 2 {
		t.Errorf("expected 2 add_to_cart, got %v", got)
	}
	if got := testutil.ToFloat64(m.mutations.WithLabelValues("clear_cart")); got != 1 {
		t.Errorf("expected 1 clear_cart, got %v", got)
	}
	if got := testutil.ToFloat64(m.catalogSize); got != 6 {
		t.Errorf("expected catalog size 6, got %v", got)
	}
	if got := testutil.ToFloat64(m.cartLines); got != 0 {
		t.Errorf("cart gauge must follow the last snapshot, got %v", got)
	}
}

func TestSetStateCountsUnits(t *testing.T) {
	m := New("test")
	m.SetState(store.State{Cart: []domain.CartItem{{Quantity: 3}, {Quantity: 2}}})

	if got := testutil.ToFloat64(m.cartUnits); got != 5 {
		t.Fatalf("expected 5 units, got %v", got)
	}
	if got := testutil.ToFloat64(m.cartLines); got != 2 {
		t.Fatalf("expected 2 lines, got %v", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New("test")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle("/metrics", m.Handler())

	for _, path := range []string{"/products/1", "/products/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	if !strings.Contains(out, `test_http_request_duration_seconds_count{code="204",method="GET",path="/products/{id}"} 2`) {
		t.Errorf("route pattern must be used as path label:\n%s", out)
	}
	if !strings.Contains(out, `path="/not-found"`) {
		t.Errorf("unknown routes must collapse to /not-found:\n%s", out)
	}
}

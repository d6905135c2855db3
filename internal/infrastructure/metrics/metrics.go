// Package metrics экспортирует состояние витрины и HTTP-метрики в Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DRSN-tech/solar-store/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const notFoundPath = "/not-found"

var defaultBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// Metrics держит собственный реестр, чтобы тесты и несколько экземпляров не конфликтовали
// с глобальным prometheus.DefaultRegisterer.
type Metrics struct {
	registry     *prometheus.Registry
	mutations    *prometheus.CounterVec
	catalogSize  prometheus.Gauge
	cartLines    prometheus.Gauge
	cartUnits    prometheus.Gauge
	httpDuration *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "State-changing store mutations by operation",
		}, []string{"op"}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_products",
			Help:      "Products currently in the catalog",
		}),
		cartLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_lines",
			Help:      "Distinct products in the cart",
		}),
		cartUnits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_units",
			Help:      "Sum of cart line quantities",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Spend time by processing a route",
			Buckets:   defaultBuckets,
		}, []string{"code", "method", "path"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.mutations,
		m.catalogSize,
		m.cartLines,
		m.cartUnits,
		m.httpDuration,
	)

	return m
}

// SetState выставляет gauge-метрики по снимку. Используется при старте, до первой мутации.
func (m *Metrics) SetState(s store.State) {
	units := 0
	for _, item := range s.Cart {
		units += item.Quantity
	}

	m.catalogSize.Set(float64(len(s.Products)))
	m.cartLines.Set(float64(len(s.Cart)))
	m.cartUnits.Set(float64(units))
}

// Observe реализует store.Observer.
func (m *Metrics) Observe(ev store.Event) {
	m.mutations.WithLabelValues(string(ev.Op)).Inc()
	m.SetState(ev.State)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware пишет длительность запроса с шаблоном chi-маршрута в качестве path,
// чтобы не раздувать кардинальность id из URL.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		path := notFoundPath
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpDuration.WithLabelValues(strconv.Itoa(status), r.Method, path).Observe(time.Since(start).Seconds())
	})
}

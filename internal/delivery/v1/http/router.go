package http

import (
	"net/http"
	"time"

	_ "github.com/DRSN-tech/solar-store/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/solar-store/internal/infrastructure/metrics"
	"github.com/DRSN-tech/solar-store/internal/usecase"
	"github.com/DRSN-tech/solar-store/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router     *chi.Mux
	logger     logger.Logger
	metrics    *metrics.Metrics
	swaggerURL string
}

func NewRouter(router *chi.Mux, logger logger.Logger, metrics *metrics.Metrics, swaggerURL string) *Router {
	return &Router{router: router, logger: logger, metrics: metrics, swaggerURL: swaggerURL}
}

func (r *Router) Init(sfUC usecase.StorefrontUC, prefUC usecase.PreferenceUC) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(requestLogger(r.logger))
	r.router.Use(middleware.Recoverer)
	r.router.Use(r.metrics.Middleware)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(r.swaggerURL), // ссылка на JSON
	))
	r.router.Handle("/metrics", r.metrics.Handler())
	r.router.Get("/healthz", healthz(sfUC))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerStorefrontRoutes(v1, NewStorefrontHandler(sfUC, r.logger))
		registerCartRoutes(v1, NewCartHandler(sfUC, r.logger))
		registerAdminRoutes(v1, NewAdminHandler(sfUC, r.logger))
		registerPreferenceRoutes(v1, NewPreferenceHandler(prefUC, r.logger))
	})
}

func registerStorefrontRoutes(router chi.Router, h *StorefrontHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Get("/featured", h.featured)
		pr.Get("/{id}", h.getProduct)
	})
	router.Route("/categories", func(cr chi.Router) {
		cr.Get("/", h.categories)
		cr.Put("/selected", h.selectCategory)
	})
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/cart", func(cr chi.Router) {
		cr.Get("/", h.getCart)
		cr.Delete("/", h.clear)
		cr.Post("/items", h.addItem)
		cr.Delete("/items/{id}", h.removeItem)
		cr.Post("/checkout", h.checkout)
	})
}

func registerAdminRoutes(router chi.Router, h *AdminHandler) {
	router.Route("/admin/products", func(ar chi.Router) {
		ar.Post("/", h.createProduct)
		ar.Put("/{id}", h.updateProduct)
		ar.Delete("/{id}", h.deleteProduct)
	})
}

func registerPreferenceRoutes(router chi.Router, h *PreferenceHandler) {
	router.Route("/preferences", func(pr chi.Router) {
		pr.Get("/theme", h.getTheme)
		pr.Put("/theme", h.setTheme)
	})
}

// healthz отвечает 200, пока владелец стора принимает команды.
func healthz(sfUC usecase.StorefrontUC) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := sfUC.Snapshot(r.Context()); err != nil {
			WriteError(w, err)
			return
		}

		WriteSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Debugf("%s %s -> %d (%v) [%s]",
				r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
		})
	}
}

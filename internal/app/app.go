package app

import (
	"context"
	"time"

	config "github.com/DRSN-tech/solar-store/internal/cfg"
	v1Grpc "github.com/DRSN-tech/solar-store/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/solar-store/internal/delivery/v1/http"
	"github.com/DRSN-tech/solar-store/internal/infrastructure/kafka"
	"github.com/DRSN-tech/solar-store/internal/infrastructure/metrics"
	"github.com/DRSN-tech/solar-store/internal/repository/memory"
	"github.com/DRSN-tech/solar-store/internal/repository/redis"
	"github.com/DRSN-tech/solar-store/internal/store"
	"github.com/DRSN-tech/solar-store/internal/usecase"
	"github.com/DRSN-tech/solar-store/pkg/clients"
	"github.com/DRSN-tech/solar-store/pkg/closer"
	"github.com/DRSN-tech/solar-store/pkg/e"
	"github.com/DRSN-tech/solar-store/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout    = 10 * time.Second
	ensureTopicTimeout = 10 * time.Second
	pingTimeout        = 5 * time.Second
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	storefront *usecase.Storefront
	httpSrv    *v1Http.Server
	grpcSrv    *v1Grpc.GRPCServer
}

// NewApp собирает зависимости. ctx ограничивает загрузку каталога и проверку внешних сервисов
// и управляет жизнью фонового публикатора событий.
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
	}

	seed, err := LoadSeed(ctx, cfg, log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	st, err := store.New(seed)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	log.Infof("Catalog loaded from %s: %d product(s)", cfg.Seed.Source, len(seed))

	m := metrics.New(cfg.Metrics.Namespace)
	m.SetState(st.Snapshot())

	observers := []store.Observer{m.Observe, eventLogger(log)}

	if cfg.Kafka.Enabled {
		publisher := a.initKafka(ctx)
		observers = append(observers, publisher.Observe)
	}

	prefRepo, err := a.initPreferenceRepo(ctx)
	if err != nil {
		_ = a.closer.Close(context.Background())
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	prefUC := usecase.NewPreferenceUC(prefRepo, cfg.Prefs.DefaultDarkTheme, log)

	a.storefront = usecase.NewStorefront(st, log, observers...)
	a.closer.Add("storefront", func(context.Context) error {
		a.storefront.Stop()
		return nil
	})

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, log)
	a.closer.Add("grpc", a.grpcSrv.Stop)

	r := chi.NewRouter()
	v1Http.NewRouter(r, log, m, cfg.Http.SwaggerURL).Init(a.storefront, prefUC)
	a.httpSrv = v1Http.NewServer(r, cfg.Http)
	a.closer.Add("http", a.httpSrv.Stop)

	return a, nil
}

// Run запускает серверы и блокируется до отмены ctx или падения одного из серверов.
func (a *App) Run(ctx context.Context) error {
	a.storefront.Start()

	errCh := make(chan error, 2)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			errCh <- e.Wrap("grpc server", err)
		}
	}()
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			errCh <- e.Wrap("http server", err)
		}
	}()
	a.grpcSrv.SetServing(true)

	var appErr error
	select {
	case <-ctx.Done():
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error")
	}

	a.grpcSrv.SetServing(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// initKafka поднимает продюсер и публикатор. Недоступный брокер не мешает старту:
// публикатор повторяет отправку, а при переполнении очереди отбрасывает события.
// Очередь дописывается при закрытии через closer, отмена ctx на это не влияет.
func (a *App) initKafka(ctx context.Context) *kafka.Publisher {
	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.Add("kafka producer", producer.Close)

	if err := producer.EnsureTopic(ensureTopicTimeout); err != nil {
		a.logger.Warnf("Kafka topic check failed: %v", err)
	}

	publisher := kafka.NewPublisher(producer, a.logger, a.cfg.Kafka.BufferSize, a.cfg.Kafka.MaxRetries)
	publisher.Start(ctx)
	a.closer.Add("kafka publisher", publisher.Close)

	return publisher
}

func (a *App) initPreferenceRepo(ctx context.Context) (usecase.PreferenceRepository, error) {
	if !a.cfg.Redis.Enabled {
		a.logger.Infof("Redis disabled, theme preferences are kept in memory")
		return memory.NewPreferenceRepo(), nil
	}

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.Add("redis", redisClient.Close)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := redisClient.Ping(pingCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return redis.NewPreferenceRepo(redisClient, a.cfg.Redis, a.logger), nil
}

// eventLogger пишет каждое событие стора на уровне debug.
func eventLogger(log logger.Logger) store.Observer {
	return func(ev store.Event) {
		log.Debugf("store event %s product=%d cart_lines=%d catalog=%d selected=%s",
			ev.Op, ev.ProductID, len(ev.State.Cart), len(ev.State.Products), ev.State.SelectedCategory)
	}
}

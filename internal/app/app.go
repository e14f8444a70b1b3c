package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/yesmovie/backend/internal/cart"
	"github.com/yesmovie/backend/internal/catalog"
	"github.com/yesmovie/backend/internal/config"
	"github.com/yesmovie/backend/internal/docstore"
	"github.com/yesmovie/backend/internal/event"
	handler "github.com/yesmovie/backend/internal/handler/http"
	"github.com/yesmovie/backend/internal/media"
	"github.com/yesmovie/backend/internal/notification"
	"github.com/yesmovie/backend/internal/payment"
	"github.com/yesmovie/backend/pkg/database"
	"github.com/yesmovie/backend/pkg/health"
	"github.com/yesmovie/backend/pkg/httpclient"
	pkgkafka "github.com/yesmovie/backend/pkg/kafka"
	"github.com/yesmovie/backend/pkg/tracing"
)

// App wires together all dependencies and runs the storefront backend.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	pool            *pgxpool.Pool
	redisClient     *redis.Client
	producer        *pkgkafka.Producer
	gcsClient       *gcs.Client
	tracingShutdown func(context.Context) error
	httpServer      *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize tracing.
	traceCfg := tracing.DefaultConfig("yesmovie-backend")
	traceCfg.Environment = cfg.Environment
	traceCfg.OTLPEndpoint = cfg.TracingEndpoint
	traceCfg.SampleRate = cfg.TracingSampleRate
	traceCfg.Enabled = cfg.TracingEnabled

	tracingShutdown, err := tracing.InitTracer(ctx, traceCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.PostgresHost
	pgCfg.Port = cfg.PostgresPort
	pgCfg.User = cfg.PostgresUser
	pgCfg.Password = cfg.PostgresPass
	pgCfg.DBName = cfg.PostgresDB
	pgCfg.SSLMode = cfg.PostgresSSL

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	// Bind entity types to document collections and create missing tables.
	bindings := append(catalog.Bindings(), cart.Binding(), media.Binding())
	docClient, err := docstore.NewClient(pool, bindings...)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("build document store client: %w", err)
	}
	if err := docClient.EnsureCollections(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure document collections: %w", err)
	}
	logger.Info("document collections ready")

	// Initialize Redis.
	redisCfg := database.DefaultRedisConfig()
	redisCfg.Host = cfg.RedisHost
	redisCfg.Port = cfg.RedisPort
	redisCfg.Password = cfg.RedisPass
	redisCfg.DB = cfg.RedisDB
	redisClient, err := database.NewRedisClient(ctx, redisCfg)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", redisCfg.Addr()))

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	eventProducer := event.NewProducer(producer, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Catalog services.
	movieRepo, err := catalog.NewMovieRepository(docClient)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("build movie repository: %w", err)
	}
	actorRepo, err := catalog.NewActorRepository(docClient)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("build actor repository: %w", err)
	}
	producerRepo, err := catalog.NewProducerRepository(docClient)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("build producer repository: %w", err)
	}
	cinemaRepo, err := catalog.NewCinemaRepository(docClient)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("build cinema repository: %w", err)
	}

	movieService := catalog.NewMovieService(movieRepo, logger)
	actorService := catalog.NewActorService(actorRepo, logger)
	producerService := catalog.NewProducerService(producerRepo, logger)
	cinemaService := catalog.NewCinemaService(cinemaRepo, logger)

	// Cart.
	cartRepo, err := cart.NewCartRepository(docClient)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("build cart repository: %w", err)
	}
	cartManager := cart.NewManager(cartRepo, movieService, eventProducer, logger)

	// Payment gateway behind a circuit breaker.
	gatewayHTTP := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultCircuitBreakerConfig("paystack"),
		logger,
	)
	paystackClient, err := payment.NewPaystackClient(gatewayHTTP, cfg.PaystackBaseURL, cfg.PaystackSecretKey, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("build paystack client: %w", err)
	}

	sender, err := notification.NewSendGridSender(cfg.SendGridAPIKey, cfg.SendGridFromName, cfg.SendGridFromEmail, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("build sendgrid sender: %w", err)
	}

	deduper := payment.NewRedisInvoiceDeduper(redisClient)
	orchestrator := payment.NewOrchestrator(
		cartManager, paystackClient, sender, deduper, eventProducer, logger, cfg.PaymentCallbackURL,
	)

	// Media storage.
	var gcsClient *gcs.Client
	var mediaStorage media.Storage
	switch cfg.MediaStorageBackend {
	case config.MediaStorageGCS:
		gcsClient, err = gcs.NewClient(ctx)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("build gcs client: %w", err)
		}
		mediaStorage, err = media.NewGCSStorage(gcsClient, cfg.MediaGCSBucket)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("build gcs storage: %w", err)
		}
	default:
		baseURL := cfg.MediaBaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost:%d", cfg.HTTPPort)
		}
		mediaStorage = media.NewMemoryStorage(baseURL)
	}

	fileRepo, err := media.NewFileRepository(docClient)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("build media repository: %w", err)
	}
	mediaService := media.NewService(fileRepo, mediaStorage, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})

	// HTTP router.
	router := handler.NewRouter(handler.Services{
		Movies:    movieService,
		Actors:    actorService,
		Producers: producerService,
		Cinemas:   cinemaService,
		Cart:      cartManager,
		Payments:  orchestrator,
		Media:     mediaService,
	}, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		pool:            pool,
		redisClient:     redisClient,
		producer:        producer,
		gcsClient:       gcsClient,
		tracingShutdown: tracingShutdown,
		httpServer:      httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.redisClient.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	if a.gcsClient != nil {
		if err := a.gcsClient.Close(); err != nil {
			a.logger.Error("gcs client close error", slog.String("error", err.Error()))
		}
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}

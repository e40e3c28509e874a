package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	grubdashserver "github.com/Apurer/grubdash-api/go"

	dishmemory "github.com/Apurer/grubdash-api/internal/domains/dishes/adapters/memory"
	dishobs "github.com/Apurer/grubdash-api/internal/domains/dishes/adapters/observability"
	dishpostgres "github.com/Apurer/grubdash-api/internal/domains/dishes/adapters/persistence/postgres"
	dishapp "github.com/Apurer/grubdash-api/internal/domains/dishes/application"
	dishports "github.com/Apurer/grubdash-api/internal/domains/dishes/ports"

	ordermemory "github.com/Apurer/grubdash-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/grubdash-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Apurer/grubdash-api/internal/domains/orders/adapters/persistence/postgres"
	orderworkflows "github.com/Apurer/grubdash-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/Apurer/grubdash-api/internal/domains/orders/application"
	orderports "github.com/Apurer/grubdash-api/internal/domains/orders/ports"

	"github.com/Apurer/grubdash-api/internal/platform/config"
	platformmetrics "github.com/Apurer/grubdash-api/internal/platform/metrics"
	platformobservability "github.com/Apurer/grubdash-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/grubdash-api/internal/platform/postgres"
	platformseed "github.com/Apurer/grubdash-api/internal/platform/seed"
)

const serviceName = "grubdash-api"

// Run boots the GrubDash HTTP API with observability, repositories, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Telemetry(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	router, cleanup, err := NewRouter(ctx, cfg, instruments, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	if err != nil {
		return err
	}
	defer cleanup()

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("GrubDash API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("GrubDash API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("GrubDash API shutdown with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("GrubDash API stopped")
	return nil
}

// NewRouter wires repositories, services, workflows and the HTTP routes for cfg.
// The returned cleanup releases the database and Temporal connections.
func NewRouter(
	ctx context.Context,
	cfg config.Config,
	instruments *platformobservability.Instruments,
	registerer prometheus.Registerer,
	gatherer prometheus.Gatherer,
) (*gin.Engine, func(), error) {
	logger := effectiveLogger(instruments)
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	cleanups = append(cleanups, closeDB)
	dishRepo, orderRepo := buildRepositories(db, logger)

	if cfg.SeedFile != "" {
		if err := applySeed(ctx, cfg.SeedFile, dishRepo, orderRepo, logger); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	dishService := dishobs.New(
		dishapp.NewService(dishRepo),
		dishobs.WithLogger(logger),
		dishobs.WithTracer(instruments.Tracer("internal.dishes.application")),
		dishobs.WithMeter(instruments.Meter("internal.dishes.application")),
	)
	orderService := orderobs.New(
		orderapp.NewService(orderRepo),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderFlows orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(orderService)
	switch {
	case cfg.TemporalDisabled:
		logger.Info("Temporal workflows disabled, running inline order creation")
	case db == nil:
		logger.Warn("Temporal workflows need shared postgres storage, running inline order creation")
	default:
		if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
			logger.Warn("Temporal workflows unavailable, running inline order creation", slog.String("error", err.Error()))
		} else {
			cleanups = append(cleanups, temporalClient.Close)
			orderFlows = orderworkflows.NewTemporalOrderWorkflows(temporalClient, orderworkflows.WithInlineFallback(orderService))
			logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
		}
	}

	responder := grubdashserver.NewErrorResponder(logger)
	handlers := grubdashserver.ApiHandleFunctions{
		DishAPI:  grubdashserver.NewDishAPI(dishService, responder),
		OrderAPI: grubdashserver.NewOrderAPI(orderService, orderFlows, responder),
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		platformmetrics.NewHTTPMetricsWithRegisterer(registerer).Middleware(),
	)
	engine.GET("/metrics", platformmetrics.Handler(gatherer))
	router := grubdashserver.NewRouterWithGinEngine(engine, handlers)
	return router, cleanup, nil
}

func buildRepositories(db *gorm.DB, logger *slog.Logger) (dishports.Repository, orderports.Repository) {
	if db == nil {
		return dishmemory.NewRepository(), ordermemory.NewRepository()
	}
	logger.Info("dish and order repositories configured with postgres")
	return dishpostgres.NewRepository(db), orderpostgres.NewRepository(db)
}

func applySeed(ctx context.Context, path string, dishes dishports.Repository, orders orderports.Repository, logger *slog.Logger) error {
	file, err := platformseed.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}
	result, err := platformseed.Apply(ctx, file, dishes, orders, nil)
	if err != nil {
		return fmt.Errorf("failed to apply seed data: %w", err)
	}
	logger.Info("seed data applied", slog.String("file", path), slog.Int("dishes", result.Dishes), slog.Int("orders", result.Orders))
	return nil
}

func connectTemporalClient(cfg config.Config, instruments *platformobservability.Instruments) (client.Client, error) {
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}

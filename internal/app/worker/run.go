package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"gorm.io/gorm"

	ordermemory "github.com/Apurer/grubdash-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/grubdash-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Apurer/grubdash-api/internal/domains/orders/adapters/persistence/postgres"
	orderapp "github.com/Apurer/grubdash-api/internal/domains/orders/application"
	orderports "github.com/Apurer/grubdash-api/internal/domains/orders/ports"
	"github.com/Apurer/grubdash-api/internal/platform/config"
	platformobservability "github.com/Apurer/grubdash-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/grubdash-api/internal/platform/postgres"
	orderactivities "github.com/Apurer/grubdash-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/grubdash-api/internal/platform/temporal/workflows/orders"
)

const serviceName = "grubdash-worker"

// Registrar is the subset of worker.Worker used to register order creation.
type Registrar interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// Register binds the order creation workflow and its activity to r.
func Register(r Registrar, service orderports.Service) {
	activities := orderactivities.NewActivities(service)
	r.RegisterWorkflowWithOptions(orderworkflows.OrderCreationWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderCreationWorkflowName})
	r.RegisterActivityWithOptions(activities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})
}

// Run polls the order creation task queue until ctx is cancelled.
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

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer closeDB()
	orderService := orderobs.New(
		orderapp.NewService(buildOrderRepository(db, logger)),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")})
	if err != nil {
		return fmt.Errorf("failed to configure Temporal tracing interceptor: %w", err)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderCreationTaskQueue, worker.Options{})
	Register(w, orderService)

	interrupt := make(chan interface{})
	go func() {
		<-ctx.Done()
		close(interrupt)
	}()
	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderCreationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(interrupt); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Temporal worker stopped")
	return nil
}

func buildOrderRepository(db *gorm.DB, logger *slog.Logger) orderports.Repository {
	if db == nil {
		logger.Warn("worker order repository is in-memory, orders persisted here are invisible to the API")
		return ordermemory.NewRepository()
	}
	logger.Info("worker order repository configured with postgres")
	return orderpostgres.NewRepository(db)
}

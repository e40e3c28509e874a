package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	orderdomain "github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/grubdash-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

const tracerName = "github.com/Apurer/grubdash-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner orderports.Service, opts ...Option) orderports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) Create(ctx context.Context, payload validation.Payload) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Create")
	defer span.End()

	s.logInfo(ctx, "creating order")
	result, err := s.inner.Create(ctx, payload)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order")
	}
	span.SetAttributes(
		attribute.String("order.id", result.ID),
		attribute.Int("order.lines", len(result.Dishes)),
	)
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "order created", slog.String("order.id", result.ID), slog.String("order.status", string(result.Status)))
	return result, nil
}

func (s *Service) Place(ctx context.Context, id string, payload validation.Payload) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Place", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("order.id", id))
	result, err := s.inner.Place(ctx, id, payload)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("order.id", id))
	}
	span.SetAttributes(attribute.Int("order.lines", len(result.Dishes)))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "order placed", slog.String("order.id", result.ID), slog.String("order.status", string(result.Status)))
	return result, nil
}

func (s *Service) Read(ctx context.Context, id string) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Read", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.Read(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, id string, payload validation.Payload) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Update", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "updating order", slog.String("order.id", id))
	result, err := s.inner.Update(ctx, id, payload)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order", slog.String("order.id", id))
	}
	span.SetAttributes(attribute.String("order.status", string(result.Status)))
	s.metrics.recordUpdated(ctx, result.Status)
	s.logInfo(ctx, "order updated", slog.String("order.id", result.ID), slog.String("order.status", string(result.Status)))
	return result, nil
}

func (s *Service) Destroy(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.Destroy", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("order.id", id))
	if err := s.inner.Destroy(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.String("order.id", id))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	level := slog.LevelError
	if apierrors.IsClientError(err) {
		level = slog.LevelWarn
		attrs = append(attrs, slog.Int("http.status", apierrors.HTTPStatusFromError(err)))
	} else if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, level, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	created metric.Int64Counter
	updated metric.Int64Counter
	deleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders placed"))
	updated, _ := m.Int64Counter("orders.service.updated", metric.WithDescription("Number of order updates by submitted status"))
	deleted, _ := m.Int64Counter("orders.service.deleted", metric.WithDescription("Number of pending orders removed"))
	return serviceMetrics{created: created, updated: updated, deleted: deleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.created != nil {
		m.created.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context, status orderdomain.Status) {
	if m.updated != nil {
		m.updated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.deleted != nil {
		m.deleted.Add(ctx, 1)
	}
}

var _ orderports.Service = (*Service)(nil)

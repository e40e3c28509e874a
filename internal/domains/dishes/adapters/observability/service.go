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

	dishdomain "github.com/Apurer/grubdash-api/internal/domains/dishes/domain"
	dishports "github.com/Apurer/grubdash-api/internal/domains/dishes/ports"
	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

const tracerName = "github.com/Apurer/grubdash-api/internal/domains/dishes/adapters/observability/service"

// Service decorates the dish service with tracing, logging, and metrics.
type Service struct {
	inner   dishports.Service
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

// New wraps the core dish service.
func New(inner dishports.Service, opts ...Option) dishports.Service {
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

func (s *Service) List(ctx context.Context) ([]*dishdomain.Dish, error) {
	ctx, span := s.tracer.Start(ctx, "DishService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list dishes")
	}
	span.SetAttributes(attribute.Int("dishes.count", len(result)))
	return result, nil
}

func (s *Service) Create(ctx context.Context, payload validation.Payload) (*dishdomain.Dish, error) {
	ctx, span := s.tracer.Start(ctx, "DishService.Create")
	defer span.End()

	s.logInfo(ctx, "creating dish")
	result, err := s.inner.Create(ctx, payload)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create dish")
	}
	span.SetAttributes(attribute.String("dish.id", result.ID))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "dish created", slog.String("dish.id", result.ID), slog.Int64("dish.price", result.Price))
	return result, nil
}

func (s *Service) Read(ctx context.Context, id string) (*dishdomain.Dish, error) {
	ctx, span := s.tracer.Start(ctx, "DishService.Read", trace.WithAttributes(attribute.String("dish.id", id)))
	defer span.End()

	result, err := s.inner.Read(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load dish", slog.String("dish.id", id))
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, id string, payload validation.Payload) (*dishdomain.Dish, error) {
	ctx, span := s.tracer.Start(ctx, "DishService.Update", trace.WithAttributes(attribute.String("dish.id", id)))
	defer span.End()

	s.logInfo(ctx, "updating dish", slog.String("dish.id", id))
	result, err := s.inner.Update(ctx, id, payload)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update dish", slog.String("dish.id", id))
	}
	s.metrics.recordUpdated(ctx)
	s.logInfo(ctx, "dish updated", slog.String("dish.id", result.ID))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// handleError records err on the span. Rejected requests log at warn, everything else at error.
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
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("dishes.service.created", metric.WithDescription("Number of dishes created"))
	updated, _ := m.Int64Counter("dishes.service.updated", metric.WithDescription("Number of dishes updated"))
	return serviceMetrics{created: created, updated: updated}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.created != nil {
		m.created.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	if m.updated != nil {
		m.updated.Add(ctx, 1)
	}
}

var _ dishports.Service = (*Service)(nil)

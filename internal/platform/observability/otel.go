package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Trace exporters selectable through Settings.TraceExporter.
const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
	ExporterNone   = "none"
)

// Instruments bundles the runtime-wide observability dependencies.
type Instruments struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Settings describes how a GrubDash process reports telemetry.
type Settings struct {
	ServiceName string
	Environment string
	LogLevel    slog.Level
	// LogOutput defaults to stdout.
	LogOutput io.Writer

	TraceExporter string
	OTLPEndpoint  string
	OTLPInsecure  bool
}

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
func ParseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", raw, err)
	}
	return level, nil
}

// ParseExporter normalizes a trace exporter name. "console" is accepted as stdout.
func ParseExporter(raw string) (string, error) {
	switch name := strings.ToLower(strings.TrimSpace(raw)); name {
	case "", ExporterOTLP:
		return ExporterOTLP, nil
	case ExporterStdout, "console":
		return ExporterStdout, nil
	case ExporterNone:
		return ExporterNone, nil
	default:
		return "", fmt.Errorf("unknown trace exporter %q (want otlp, stdout or none)", raw)
	}
}

// Init installs the process logger, tracer provider and meter provider.
// The returned shutdown flushes spans and writes a final counter summary to the log.
func Init(ctx context.Context, settings Settings) (*Instruments, func(context.Context) error, error) {
	output := settings.LogOutput
	if output == nil {
		output = os.Stdout
	}
	logger := NewLogger(output, settings.LogLevel)
	slog.SetDefault(logger)

	res, err := newResource(ctx, settings)
	if err != nil {
		return nil, nil, fmt.Errorf("build telemetry resource: %w", err)
	}
	tracerProvider, err := newTracerProvider(ctx, settings, res, logger)
	if err != nil {
		return nil, nil, err
	}
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader))
	otel.SetMeterProvider(meterProvider)

	shutdown := func(ctx context.Context) error {
		logCounters(ctx, reader, logger)
		return errors.Join(meterProvider.Shutdown(ctx), tracerProvider.Shutdown(ctx))
	}
	return &Instruments{
		Logger:         logger,
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
	}, shutdown, nil
}

// Tracer returns a named tracer from the configured provider.
func (i *Instruments) Tracer(name string) trace.Tracer {
	if i == nil || i.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return i.TracerProvider.Tracer(name)
}

// Meter returns a named meter from the configured provider.
func (i *Instruments) Meter(name string) metric.Meter {
	if i == nil || i.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return i.MeterProvider.Meter(name)
}

// NewLogger builds the JSON logger used by every process.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: true}))
}

func newResource(ctx context.Context, settings Settings) (*resource.Resource, error) {
	environment := settings.Environment
	if environment == "" {
		environment = "local"
	}
	return resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service.name", settings.ServiceName),
			attribute.String("deployment.environment", environment),
		),
	)
}

func newTracerProvider(ctx context.Context, settings Settings, res *resource.Resource, logger *slog.Logger) (*sdktrace.TracerProvider, error) {
	name, err := ParseExporter(settings.TraceExporter)
	if err != nil {
		return nil, err
	}
	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	switch name {
	case ExporterNone:
		logger.Debug("trace export disabled")
	case ExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("stdout trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	default:
		exporter, err := newOTLPExporter(ctx, settings)
		if err != nil {
			logger.Warn("failed to initialize OTLP trace exporter, falling back to stdout", slog.String("error", err.Error()))
			fallback, stdoutErr := stdouttrace.New(stdouttrace.WithPrettyPrint())
			if stdoutErr != nil {
				return nil, errors.Join(err, stdoutErr)
			}
			opts = append(opts, sdktrace.WithBatcher(fallback))
			break
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	return sdktrace.NewTracerProvider(opts...), nil
}

func newOTLPExporter(ctx context.Context, settings Settings) (sdktrace.SpanExporter, error) {
	var opts []otlptracehttp.Option
	if endpoint := strings.TrimSpace(settings.OTLPEndpoint); endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	}
	if settings.OTLPInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

// logCounters writes the cumulative value of every integer counter collected by reader.
func logCounters(ctx context.Context, reader sdkmetric.Reader, logger *slog.Logger) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		logger.Warn("failed to collect counters", slog.String("error", err.Error()))
		return
	}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			var total int64
			for _, point := range sum.DataPoints {
				total += point.Value
			}
			logger.LogAttrs(ctx, slog.LevelInfo, "counter total",
				slog.String("scope", scope.Scope.Name),
				slog.String("metric", m.Name),
				slog.Int64("value", total),
			)
		}
	}
}

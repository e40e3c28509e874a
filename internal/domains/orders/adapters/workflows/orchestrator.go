package workflows

import (
	"context"
	"errors"
	"fmt"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	"github.com/Apurer/grubdash-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/grubdash-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/grubdash-api/internal/platform/temporal/workflows/orders"
	"github.com/Apurer/grubdash-api/internal/shared/idgen"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
	fallback  ports.Service
}

// TemporalOption customizes TemporalOrderWorkflows.
type TemporalOption func(*TemporalOrderWorkflows)

// WithInlineFallback creates orders through service when the Temporal frontend is unreachable.
// Only safe when the worker and the API share storage.
func WithInlineFallback(service ports.Service) TemporalOption {
	return func(o *TemporalOrderWorkflows) {
		o.fallback = service
	}
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client, opts ...TemporalOption) *TemporalOrderWorkflows {
	o := &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderCreationTaskQueue}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CreateOrder runs the order creation workflow and waits for the stored order.
// A payload rejected inside the workflow comes back as the same signal the inline path returns.
func (o *TemporalOrderWorkflows) CreateOrder(ctx context.Context, payload validation.Payload) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceID := workflowTraceID(ctx)
	options := client.StartWorkflowOptions{
		ID:        buildOrderCreationWorkflowID(traceID),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderCreationWorkflowName,
		orderworkflows.OrderCreationWorkflowInput{Payload: payload, TraceID: traceID},
	)
	if err != nil {
		var unavailable *serviceerror.Unavailable
		if errors.As(err, &unavailable) && o.fallback != nil {
			return o.fallback.Create(ctx, payload)
		}
		return nil, fmt.Errorf("start order creation workflow: %w", err)
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		if signal, ok := orderactivities.SignalFromError(err); ok {
			return nil, signal
		}
		return nil, fmt.Errorf("order creation workflow %s: %w", run.GetID(), err)
	}
	return &order, nil
}

// InlineOrderWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the orders service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// CreateOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) CreateOrder(ctx context.Context, payload validation.Payload) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.Create(ctx, payload)
}

func buildOrderCreationWorkflowID(traceID string) string {
	if traceID == "" {
		return fmt.Sprintf("order-creation-%s", idgen.New())
	}
	return fmt.Sprintf("order-creation-%s-%s", idgen.New(), traceID)
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}

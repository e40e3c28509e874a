package orders

import (
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	"github.com/Apurer/grubdash-api/internal/platform/temporal/sequences"
	"github.com/Apurer/grubdash-api/internal/shared/idgen"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

const (
	// OrderCreationWorkflowName is the public identifier for registering the workflow.
	OrderCreationWorkflowName = "orders.workflows.Creation"
	// OrderCreationTaskQueue is the queue consumed by the worker processing order workflows.
	OrderCreationTaskQueue = "ORDER_CREATION"
)

// OrderCreationWorkflowInput carries the submitted order payload.
type OrderCreationWorkflowInput struct {
	Payload validation.Payload
	TraceID string
}

// OrderCreationWorkflow validates and persists a new order. The order id is recorded once in workflow
// history so every activity attempt writes the same order.
func OrderCreationWorkflow(ctx workflow.Context, input OrderCreationWorkflowInput) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderCreationWorkflow started", withTraceID(input.TraceID)...)
	var orderID string
	if err := workflow.SideEffect(ctx, func(workflow.Context) interface{} {
		return idgen.New()
	}).Get(&orderID); err != nil {
		return nil, err
	}
	order, err := sequences.RunOrderPersistenceSequence(ctx, orderID, input.Payload)
	if err != nil {
		logger.Error("OrderCreationWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderCreationWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}

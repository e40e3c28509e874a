package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/grubdash-api/internal/platform/temporal/activities/orders"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

// RunOrderPersistenceSequence executes the activities needed to place an order under orderID.
func RunOrderPersistenceSequence(ctx workflow.Context, orderID string, payload validation.Payload) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order persistence sequence started", "orderId", orderID)
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{orderactivities.SignalErrorType},
		},
	}

	var order orderdomain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), orderactivities.PersistOrderActivityName, orderactivities.PersistOrderInput{OrderID: orderID, Payload: payload}).Get(ctx, &order)
	if err != nil {
		logger.Error("order persistence sequence failed", "error", err)
		return nil, err
	}
	logger.Info("order persistence sequence persisted", "orderId", order.ID)
	return &order, nil
}

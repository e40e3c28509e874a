package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	orderdomain "github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/grubdash-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/grubdash-api/internal/shared/errors"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

const (
	// PersistOrderActivityName validates and stores a new order.
	PersistOrderActivityName = "orders.activities.PersistOrder"
	// SignalErrorType tags application errors that carry a client-facing signal.
	SignalErrorType = "grubdash.Signal"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PersistOrderInput carries the order id assigned by the workflow and the submitted payload.
type PersistOrderInput struct {
	OrderID string
	Payload validation.Payload
}

// PersistOrder runs the order create chain and stores the order under input.OrderID. Retries overwrite the
// same order. A rejected payload fails without retries and keeps its status and message as error details.
func (a *Activities) PersistOrder(ctx context.Context, input PersistOrderInput) (*orderdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order persist activity not initialized")
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "orderId", input.OrderID, "attempt", activity.GetInfo(ctx).Attempt)
	order, err := a.service.Place(ctx, input.OrderID, input.Payload)
	if err != nil {
		var signal apierrors.Signal
		if errors.As(err, &signal) {
			logger.Warn("PersistOrder rejected payload", "status", signal.Status, "message", signal.Message)
			return nil, SignalError(signal)
		}
		logger.Error("PersistOrder activity failed", "error", err)
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID)
	return order, nil
}

// SignalError wraps signal in a non-retryable application error.
func SignalError(signal apierrors.Signal) error {
	return temporal.NewNonRetryableApplicationError(signal.Message, SignalErrorType, signal, signal.Status, signal.Message)
}

// SignalFromError recovers a signal raised by PersistOrder from a workflow or activity error chain.
func SignalFromError(err error) (apierrors.Signal, bool) {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) || appErr.Type() != SignalErrorType || !appErr.HasDetails() {
		return apierrors.Signal{}, false
	}
	var signal apierrors.Signal
	if detailsErr := appErr.Details(&signal.Status, &signal.Message); detailsErr != nil {
		return apierrors.Signal{}, false
	}
	return signal, true
}

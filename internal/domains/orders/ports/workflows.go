package ports

import (
	"context"

	"github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

// WorkflowOrchestrator runs order placement, either durably or inline.
type WorkflowOrchestrator interface {
	CreateOrder(ctx context.Context, payload validation.Payload) (*domain.Order, error)
}

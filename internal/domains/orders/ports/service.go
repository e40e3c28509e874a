package ports

import (
	"context"

	"github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

// Service exposes the order use cases to adapters.
type Service interface {
	List(ctx context.Context) ([]*domain.Order, error)
	Create(ctx context.Context, payload validation.Payload) (*domain.Order, error)
	Place(ctx context.Context, id string, payload validation.Payload) (*domain.Order, error)
	Read(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, id string, payload validation.Payload) (*domain.Order, error)
	Destroy(ctx context.Context, id string) error
}

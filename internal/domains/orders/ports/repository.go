package ports

import (
	"context"
	"errors"

	"github.com/Apurer/grubdash-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository stores orders in insertion order.
type Repository interface {
	List(ctx context.Context) ([]*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// Save appends an order with an unknown id or replaces the stored order in place.
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

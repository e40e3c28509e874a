package ports

import (
	"context"

	"github.com/Apurer/grubdash-api/internal/domains/dishes/domain"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

// Service exposes the dish use cases to adapters.
type Service interface {
	List(ctx context.Context) ([]*domain.Dish, error)
	Create(ctx context.Context, payload validation.Payload) (*domain.Dish, error)
	Read(ctx context.Context, id string) (*domain.Dish, error)
	Update(ctx context.Context, id string, payload validation.Payload) (*domain.Dish, error)
}

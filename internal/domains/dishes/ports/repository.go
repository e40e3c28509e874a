package ports

import (
	"context"
	"errors"

	"github.com/Apurer/grubdash-api/internal/domains/dishes/domain"
)

var ErrNotFound = errors.New("dish not found")

// Repository stores dishes in insertion order.
type Repository interface {
	List(ctx context.Context) ([]*domain.Dish, error)
	GetByID(ctx context.Context, id string) (*domain.Dish, error)
	// Save appends a dish with an unknown id or replaces the stored dish in place.
	Save(ctx context.Context, dish *domain.Dish) (*domain.Dish, error)
}

package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	"github.com/Apurer/grubdash-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders []*domain.Order
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, order.Clone())
	}
	return list, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.orders[i].Clone(), nil
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if order.ID == "" {
		return nil, errors.New("order id is required")
	}
	clone := order.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(clone.ID); i >= 0 {
		r.orders[i] = clone
	} else {
		r.orders = append(r.orders, clone)
	}
	return clone.Clone(), nil
}

// Delete removes the order and closes the gap, keeping the remaining order intact.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ports.ErrNotFound
	}
	r.orders = append(r.orders[:i], r.orders[i+1:]...)
	return nil
}

func (r *Repository) indexOf(id string) int {
	for i, order := range r.orders {
		if order.ID == id {
			return i
		}
	}
	return -1
}

package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/grubdash-api/internal/domains/dishes/domain"
	"github.com/Apurer/grubdash-api/internal/domains/dishes/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory dish persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	dishes []*domain.Dish
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) List(_ context.Context) ([]*domain.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Dish, 0, len(r.dishes))
	for _, dish := range r.dishes {
		list = append(list, dish.Clone())
	}
	return list, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.dishes[i].Clone(), nil
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) Save(_ context.Context, dish *domain.Dish) (*domain.Dish, error) {
	if dish == nil {
		return nil, errors.New("dish is nil")
	}
	if dish.ID == "" {
		return nil, errors.New("dish id is required")
	}
	clone := dish.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(clone.ID); i >= 0 {
		r.dishes[i] = clone
	} else {
		r.dishes = append(r.dishes, clone)
	}
	return clone.Clone(), nil
}

func (r *Repository) indexOf(id string) int {
	for i, dish := range r.dishes {
		if dish.ID == id {
			return i
		}
	}
	return -1
}

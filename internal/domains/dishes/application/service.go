package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/Apurer/grubdash-api/internal/domains/dishes/domain"
	"github.com/Apurer/grubdash-api/internal/domains/dishes/ports"
	"github.com/Apurer/grubdash-api/internal/shared/idgen"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

// Service orchestrates the dish use cases.
type Service struct {
	repo ports.Repository
	ids  idgen.Generator

	// mu serializes mutating chains so a lookup and the write that follows it are observed together.
	mu sync.Mutex

	readChain   validation.Chain[*request]
	createChain validation.Chain[*request]
	updateChain validation.Chain[*request]
}

// Option configures the service.
type Option func(*Service)

// WithIDGenerator replaces the default random identifier generator.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(s *Service) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// NewService wires the dish service with its repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, ids: idgen.Default}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	exists := validation.Lookup(
		resource,
		func(r *request) string { return r.routeID },
		s.repo.GetByID,
		ports.ErrNotFound,
		func(r *request, d *domain.Dish) { r.dish = d },
	)
	s.readChain = validation.Chain[*request]{exists}
	s.createChain = fieldChain
	s.updateChain = validation.Chain[*request]{exists}.
		Then(fieldChain...).
		Then(validation.MatchesRouteID[*request](resource, func(r *request) string { return r.dish.ID }))
	return s
}

// List returns every dish in insertion order.
func (s *Service) List(ctx context.Context) ([]*domain.Dish, error) {
	dishes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	return dishes, nil
}

// Create validates the payload and appends a dish with a fresh identifier.
func (s *Service) Create(ctx context.Context, payload validation.Payload) (*domain.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := &request{payload: payload}
	if err := s.createChain.Run(ctx, req); err != nil {
		return nil, err
	}
	dish := domain.New(s.ids.NewID(), fieldsFrom(payload))
	saved, err := s.repo.Save(ctx, dish)
	if err != nil {
		return nil, fmt.Errorf("save dish %s: %w", dish.ID, err)
	}
	return saved, nil
}

// Read loads a single dish.
func (s *Service) Read(ctx context.Context, id string) (*domain.Dish, error) {
	req := &request{routeID: id}
	if err := s.readChain.Run(ctx, req); err != nil {
		return nil, err
	}
	return req.dish, nil
}

// Update validates the payload and overwrites the stored dish in place.
func (s *Service) Update(ctx context.Context, id string, payload validation.Payload) (*domain.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := &request{routeID: id, payload: payload}
	if err := s.updateChain.Run(ctx, req); err != nil {
		return nil, err
	}
	req.dish.Overwrite(fieldsFrom(payload))
	saved, err := s.repo.Save(ctx, req.dish)
	if err != nil {
		return nil, fmt.Errorf("save dish %s: %w", req.dish.ID, err)
	}
	return saved, nil
}

var _ ports.Service = (*Service)(nil)

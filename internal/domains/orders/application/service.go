package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Apurer/grubdash-api/internal/domains/orders/domain"
	"github.com/Apurer/grubdash-api/internal/domains/orders/ports"
	"github.com/Apurer/grubdash-api/internal/shared/idgen"
	"github.com/Apurer/grubdash-api/internal/shared/validation"
)

// Service orchestrates the order use cases.
type Service struct {
	repo ports.Repository
	ids  idgen.Generator

	// mu serializes mutating chains so a lookup and the write that follows it are observed together.
	mu sync.Mutex

	readChain    validation.Chain[*request]
	createChain  validation.Chain[*request]
	updateChain  validation.Chain[*request]
	destroyChain validation.Chain[*request]
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

// NewService wires the order service with its repository.
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
		func(r *request, o *domain.Order) { r.order = o },
	)
	s.readChain = validation.Chain[*request]{exists}
	s.createChain = fieldChain
	s.updateChain = validation.Chain[*request]{exists}.
		Then(fieldChain...).
		Then(
			validation.MatchesRouteID[*request](resource, func(r *request) string { return r.order.ID }),
			statusCheck,
		)
	s.destroyChain = validation.Chain[*request]{exists, pending}
	return s
}

// List returns every order in insertion order.
func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Create validates the payload and appends an order with a fresh identifier. The status is kept as submitted.
func (s *Service) Create(ctx context.Context, payload validation.Payload) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.place(ctx, s.ids.NewID(), payload)
}

// Place is Create with a caller-assigned identifier. Placing the same id again replaces the stored order,
// so a retried placement never leaves a second copy behind.
func (s *Service) Place(ctx context.Context, id string, payload validation.Payload) (*domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("place order: empty id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.place(ctx, id, payload)
}

func (s *Service) place(ctx context.Context, id string, payload validation.Payload) (*domain.Order, error) {
	req := &request{payload: payload}
	if err := s.createChain.Run(ctx, req); err != nil {
		return nil, err
	}
	order := domain.New(id, fieldsFrom(payload))
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("save order %s: %w", order.ID, err)
	}
	return saved, nil
}

// Read loads a single order.
func (s *Service) Read(ctx context.Context, id string) (*domain.Order, error) {
	req := &request{routeID: id}
	if err := s.readChain.Run(ctx, req); err != nil {
		return nil, err
	}
	return req.order, nil
}

// Update validates the payload and overwrites the stored order in place.
func (s *Service) Update(ctx context.Context, id string, payload validation.Payload) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := &request{routeID: id, payload: payload}
	if err := s.updateChain.Run(ctx, req); err != nil {
		return nil, err
	}
	req.order.Overwrite(fieldsFrom(payload))
	saved, err := s.repo.Save(ctx, req.order)
	if err != nil {
		return nil, fmt.Errorf("save order %s: %w", req.order.ID, err)
	}
	return saved, nil
}

// Destroy removes a pending order.
func (s *Service) Destroy(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := &request{routeID: id}
	if err := s.destroyChain.Run(ctx, req); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)

package customers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/Domenick1991/boxoffice/internal/repository"
)

type CustomerUseCase interface {
	RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*domain.Customer, domain.Outcome, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, bool)
	List(ctx context.Context) []domain.Customer
	RemoveCustomer(ctx context.Context, id int64) (domain.Outcome, error)
}

type RegisterCustomerInput struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

// CustomerService owns the customer collection. Removing a customer leaves
// already issued tickets untouched.
type CustomerService struct {
	mu        sync.RWMutex
	customers []domain.Customer
	store     repository.RecordStore[domain.Customer]
	logger    *slog.Logger
}

type CustomerServiceOption func(*CustomerService)

func WithLogger(logger *slog.Logger) CustomerServiceOption {
	return func(s *CustomerService) {
		s.logger = logger
	}
}

func NewCustomerService(ctx context.Context, store repository.RecordStore[domain.Customer], opts ...CustomerServiceOption) (*CustomerService, error) {
	s := &CustomerService{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	customers, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	s.customers = customers
	s.logger.Debug("customers loaded", "count", len(customers))
	return s, nil
}

func (s *CustomerService) RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*domain.Customer, domain.Outcome, error) {
	name := strings.TrimSpace(input.Name)
	document := strings.TrimSpace(input.Document)
	if name == "" || document == "" {
		return nil, domain.InvalidArgument, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if c.Document == document {
			return nil, domain.AlreadyExists, nil
		}
	}

	customer := domain.Customer{
		ID:       s.nextID(),
		Name:     name,
		Document: document,
	}
	next := make([]domain.Customer, len(s.customers), len(s.customers)+1)
	copy(next, s.customers)
	next = append(next, customer)
	if err := s.store.Save(ctx, next); err != nil {
		return nil, "", fmt.Errorf("save customers: %w", err)
	}
	s.customers = next

	s.logger.Info("customer registered", "customer_id", customer.ID)
	return &customer, domain.Success, nil
}

// GetByID returns false for a non-positive id or an unknown customer.
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*domain.Customer, bool) {
	if id <= 0 {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.ID == id {
			customer := c
			return &customer, true
		}
	}
	return nil, false
}

func (s *CustomerService) List(ctx context.Context) []domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *CustomerService) RemoveCustomer(ctx context.Context, id int64) (domain.Outcome, error) {
	if id <= 0 {
		return domain.InvalidArgument, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.customers {
		if c.ID != id {
			continue
		}
		next := make([]domain.Customer, 0, len(s.customers)-1)
		next = append(next, s.customers[:i]...)
		next = append(next, s.customers[i+1:]...)
		if err := s.store.Save(ctx, next); err != nil {
			return "", fmt.Errorf("save customers: %w", err)
		}
		s.customers = next
		s.logger.Info("customer removed", "customer_id", id)
		return domain.Success, nil
	}
	return domain.NotFound, nil
}

func (s *CustomerService) nextID() int64 {
	var last int64
	for _, c := range s.customers {
		if c.ID > last {
			last = c.ID
		}
	}
	return last + 1
}

var _ CustomerUseCase = (*CustomerService)(nil)

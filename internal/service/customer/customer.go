package customer

import (
	"context"

	"crmdesk-service/internal/domain/customer"
	"crmdesk-service/internal/repository"
	segmentsvc "crmdesk-service/internal/service/segment"

	"go.uber.org/zap"
)

type CustomerService struct {
	customerRepo *repository.CustomerRepository
	counts       *segmentsvc.CountCache
	logger       *zap.Logger
}

func NewCustomerService(customerRepo *repository.CustomerRepository, counts *segmentsvc.CountCache, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		counts:       counts,
		logger:       logger,
	}
}

func (s *CustomerService) ListCustomers(ctx context.Context, f *customer.ListFilters) (*customer.ListResponse, error) {
	return s.customerRepo.List(ctx, f)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	return s.customerRepo.Get(ctx, id)
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	c, err := s.customerRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	// Any customer write can change segment membership; invalidate the
	// cached counts synchronously.
	s.counts.Bump(ctx)

	s.logger.Info("customer created",
		zap.String("customer_id", c.ID),
		zap.String("email", c.Email),
	)
	return c, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	c, err := s.customerRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.counts.Bump(ctx)

	s.logger.Info("customer updated", zap.String("customer_id", id))
	return c, nil
}

// DeleteCustomer removes the customer record only. Interactions, tickets,
// and memberships keep their foreign keys; there is no cascade.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.counts.Bump(ctx)

	s.logger.Info("customer deleted", zap.String("customer_id", id))
	return nil
}

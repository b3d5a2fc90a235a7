package stats

import (
	"context"

	"crmdesk-service/internal/domain/customer"
	"crmdesk-service/internal/domain/ticket"
	"crmdesk-service/internal/repository"

	"go.uber.org/zap"
)

// Stats is the dashboard roll-up computed from live data on every call.
type Stats struct {
	TotalCustomers    int64   `json:"totalCustomers"`
	ActiveCustomers   int64   `json:"activeCustomers"`
	TotalInteractions int64   `json:"totalInteractions"`
	OpenTickets       int64   `json:"openTickets"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AvgCustomerValue  float64 `json:"avgCustomerValue"`
}

type StatsService struct {
	customerRepo    *repository.CustomerRepository
	interactionRepo *repository.InteractionRepository
	ticketRepo      *repository.TicketRepository
	logger          *zap.Logger
}

func NewStatsService(
	customerRepo *repository.CustomerRepository,
	interactionRepo *repository.InteractionRepository,
	ticketRepo *repository.TicketRepository,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		customerRepo:    customerRepo,
		interactionRepo: interactionRepo,
		ticketRepo:      ticketRepo,
		logger:          logger,
	}
}

// Snapshot computes all dashboard metrics with dedicated count queries
// rather than loading full collections.
func (s *StatsService) Snapshot(ctx context.Context) (*Stats, error) {
	total, err := s.customerRepo.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	active, err := s.customerRepo.Count(ctx, string(customer.StatusActive))
	if err != nil {
		return nil, err
	}
	interactions, err := s.interactionRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	openTickets, err := s.ticketRepo.CountByStatus(ctx, string(ticket.StatusOpen))
	if err != nil {
		return nil, err
	}
	revenue, err := s.customerRepo.SumValue(ctx)
	if err != nil {
		return nil, err
	}

	avg := 0.0
	if total > 0 {
		avg = revenue / float64(total)
	}

	return &Stats{
		TotalCustomers:    total,
		ActiveCustomers:   active,
		TotalInteractions: interactions,
		OpenTickets:       openTickets,
		TotalRevenue:      revenue,
		AvgCustomerValue:  avg,
	}, nil
}

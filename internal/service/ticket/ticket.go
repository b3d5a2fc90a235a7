package ticket

import (
	"context"

	"crmdesk-service/internal/domain/ticket"
	"crmdesk-service/internal/repository"

	"go.uber.org/zap"
)

type TicketService struct {
	ticketRepo *repository.TicketRepository
	logger     *zap.Logger
}

func NewTicketService(ticketRepo *repository.TicketRepository, logger *zap.Logger) *TicketService {
	return &TicketService{ticketRepo: ticketRepo, logger: logger}
}

func (s *TicketService) ListTickets(ctx context.Context, f *ticket.ListFilters) (*ticket.ListResponse, error) {
	return s.ticketRepo.List(ctx, f)
}

func (s *TicketService) GetTicket(ctx context.Context, id string) (*ticket.SupportTicket, error) {
	return s.ticketRepo.Get(ctx, id)
}

func (s *TicketService) CreateTicket(ctx context.Context, req *ticket.CreateTicketRequest) (*ticket.SupportTicket, error) {
	t, err := s.ticketRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket created",
		zap.String("ticket_id", t.ID),
		zap.String("customer_id", t.CustomerID),
		zap.String("priority", string(t.Priority)),
	)
	return t, nil
}

func (s *TicketService) UpdateTicket(ctx context.Context, id string, req *ticket.UpdateTicketRequest) (*ticket.SupportTicket, error) {
	t, err := s.ticketRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket updated", zap.String("ticket_id", id))
	return t, nil
}

func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	if err := s.ticketRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("ticket deleted", zap.String("ticket_id", id))
	return nil
}

func (s *TicketService) AddResponse(ctx context.Context, ticketID string, req *ticket.CreateResponseRequest) (*ticket.Response, error) {
	resp, err := s.ticketRepo.AddResponse(ctx, ticketID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket response added",
		zap.String("ticket_id", ticketID),
		zap.String("response_id", resp.ID),
	)
	return resp, nil
}

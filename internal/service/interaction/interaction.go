package interaction

import (
	"context"

	"crmdesk-service/internal/domain/interaction"
	"crmdesk-service/internal/repository"

	"go.uber.org/zap"
)

type InteractionService struct {
	interactionRepo *repository.InteractionRepository
	logger          *zap.Logger
}

func NewInteractionService(interactionRepo *repository.InteractionRepository, logger *zap.Logger) *InteractionService {
	return &InteractionService{interactionRepo: interactionRepo, logger: logger}
}

func (s *InteractionService) ListInteractions(ctx context.Context, f *interaction.ListFilters) (*interaction.ListResponse, error) {
	return s.interactionRepo.List(ctx, f)
}

func (s *InteractionService) GetInteraction(ctx context.Context, id string) (*interaction.Interaction, error) {
	return s.interactionRepo.Get(ctx, id)
}

func (s *InteractionService) CreateInteraction(ctx context.Context, req *interaction.CreateInteractionRequest) (*interaction.Interaction, error) {
	in, err := s.interactionRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("interaction created",
		zap.String("interaction_id", in.ID),
		zap.String("customer_id", in.CustomerID),
		zap.String("type", string(in.Type)),
	)
	return in, nil
}

func (s *InteractionService) UpdateInteraction(ctx context.Context, id string, req *interaction.UpdateInteractionRequest) (*interaction.Interaction, error) {
	in, err := s.interactionRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("interaction updated", zap.String("interaction_id", id))
	return in, nil
}

func (s *InteractionService) DeleteInteraction(ctx context.Context, id string) error {
	if err := s.interactionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("interaction deleted", zap.String("interaction_id", id))
	return nil
}

package usecase

import (
	"context"

	"github.com/google/uuid"

	"skillur/internal/domain"
	"skillur/internal/pkg/logger"
	"skillur/internal/repository"
)

type PlanUseCase struct {
	planRepo *repository.PlanRepository
	log      *logger.Logger
}

func NewPlanUseCase(pr *repository.PlanRepository, log *logger.Logger) *PlanUseCase {
	return &PlanUseCase{planRepo: pr, log: log}
}

func (uc *PlanUseCase) List(ctx context.Context) ([]domain.PremiumPlan, error) {
	return uc.planRepo.List(ctx)
}

// Subscribe is a stub until payment processing lands: it only verifies the
// plan and records the intent in the log.
func (uc *PlanUseCase) Subscribe(ctx context.Context, userID, planID uuid.UUID) (*domain.PremiumPlan, error) {
	plan, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	uc.log.Info("subscription requested", "user_id", userID, "plan", plan.Name)
	return plan, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"skillur/internal/domain"
	"skillur/internal/pkg/logger"
	"skillur/internal/repository"
)

type ReferralUseCase struct {
	referralRepo *repository.ReferralRepository
	frontendURL  string
	log          *logger.Logger
}

func NewReferralUseCase(rr *repository.ReferralRepository, frontendURL string, log *logger.Logger) *ReferralUseCase {
	return &ReferralUseCase{
		referralRepo: rr,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		log:          log,
	}
}

// Handle credits the owner of referrerSCS for the signup of newUserID.
func (uc *ReferralUseCase) Handle(ctx context.Context, referrerSCS string, newUserID uuid.UUID) error {
	referral, err := uc.referralRepo.Credit(ctx, referrerSCS, newUserID)
	if err != nil {
		return err
	}
	uc.log.Info("referral credited",
		"referrer_id", referral.ReferrerID,
		"referred_id", referral.ReferredID,
		"coins_awarded", referral.CoinsAwarded)
	return nil
}

// Link builds the shareable signup URL carrying the profile's public code.
func (uc *ReferralUseCase) Link(profile *domain.Profile) string {
	return fmt.Sprintf("%s/auth?ref=%s", uc.frontendURL, profile.SCSNumber)
}

func (uc *ReferralUseCase) ListByReferrer(ctx context.Context, referrerID uuid.UUID) ([]domain.Referral, error) {
	return uc.referralRepo.ListByReferrer(ctx, referrerID)
}

package usecase

import (
	"context"

	"github.com/google/uuid"

	"skillur/internal/domain"
	"skillur/internal/repository"
)

type DashboardUseCase struct {
	profileRepo  *repository.ProfileRepository
	subjectRepo  *repository.SubjectRepository
	progressRepo *repository.ProgressRepository
	referralRepo *repository.ReferralRepository
}

func NewDashboardUseCase(
	pr *repository.ProfileRepository,
	sr *repository.SubjectRepository,
	pgr *repository.ProgressRepository,
	rr *repository.ReferralRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		profileRepo:  pr,
		subjectRepo:  sr,
		progressRepo: pgr,
		referralRepo: rr,
	}
}

type StudentDashboard struct {
	Coins            int               `json:"coins"`
	ReferralCount    int               `json:"referral_count"`
	NextRewardAt     int               `json:"next_reward_at"`
	UnlockedChapters int64             `json:"unlocked_chapters"`
	Subjects         []domain.Subject  `json:"subjects"`
	Referrals        []domain.Referral `json:"referrals"`
}

func (uc *DashboardUseCase) Student(ctx context.Context, userID uuid.UUID) (*StudentDashboard, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	subjects, err := uc.subjectRepo.List(ctx, profile.Class)
	if err != nil {
		return nil, err
	}
	unlocked, err := uc.progressRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	referrals, err := uc.referralRepo.ListByReferrer(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &StudentDashboard{
		Coins:            profile.Coins,
		ReferralCount:    profile.ReferralCount,
		NextRewardAt:     domain.NextRewardAt(profile.ReferralCount),
		UnlockedChapters: unlocked,
		Subjects:         subjects,
		Referrals:        referrals,
	}, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillur/internal/domain"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// Credit attributes a signup to the holder of referrerSCS: the referral row,
// the referrer's bumped count, any minted coin and the referred profile's
// back-reference commit as one transaction.
func (r *ReferralRepository) Credit(ctx context.Context, referrerSCS string, referredID uuid.UUID) (*domain.Referral, error) {
	var referral *domain.Referral
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var referrer domain.Profile
		if err := tx.Where("scs_number = ?", referrerSCS).First(&referrer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrReferrerNotFound
			}
			return err
		}
		if referrer.ID == referredID {
			return domain.ErrReferrerNotFound
		}

		newCount := referrer.ReferralCount + 1
		reward := domain.ReferralReward(newCount)

		updates := map[string]interface{}{
			"referral_count": gorm.Expr("referral_count + 1"),
		}
		if reward > 0 {
			updates["coins"] = gorm.Expr("coins + ?", reward)
		}
		if err := tx.Model(&domain.Profile{}).
			Where("id = ?", referrer.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Profile{}).
			Where("id = ?", referredID).
			Update("referred_by", referrer.ID).Error; err != nil {
			return err
		}

		referral = &domain.Referral{
			ID:           uuid.New(),
			ReferrerID:   referrer.ID,
			ReferredID:   referredID,
			CoinsAwarded: reward,
		}
		return tx.Create(referral).Error
	})
	if err != nil {
		return nil, err
	}
	return referral, nil
}

func (r *ReferralRepository) ListByReferrer(ctx context.Context, referrerID uuid.UUID) ([]domain.Referral, error) {
	var referrals []domain.Referral
	err := r.db.WithContext(ctx).
		Where("referrer_id = ?", referrerID).
		Order("created_at desc").
		Find(&referrals).Error
	return referrals, err
}

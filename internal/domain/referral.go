package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrReferrerNotFound = errors.New("referrer not found")

type Referral struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ReferrerID   uuid.UUID `json:"referrer_id" gorm:"type:uuid;index;not null"`
	ReferredID   uuid.UUID `json:"referred_id" gorm:"type:uuid;uniqueIndex;not null"`
	CoinsAwarded int       `json:"coins_awarded" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Referral) TableName() string {
	return "referrals"
}

// ReferralReward returns the coins minted for the referral that brought the
// referrer's count to total. One coin per two successful referrals: the coin
// lands each time the count reaches an even number.
func ReferralReward(total int) int {
	if total > 0 && total%2 == 0 {
		return 1
	}
	return 0
}

// NextRewardAt returns the referral count at which the next coin is minted.
func NextRewardAt(count int) int {
	return (count/2)*2 + 2
}

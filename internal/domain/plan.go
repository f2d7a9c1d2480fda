package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrPlanNotFound = errors.New("plan not found")

// PremiumPlan is read-only reference data; rows are seeded at startup.
type PremiumPlan struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string    `json:"name" gorm:"unique;not null"`
	Price         int       `json:"price" gorm:"not null"`
	CoinsPerMonth int       `json:"coins_per_month" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PremiumPlan) TableName() string {
	return "premium_plans"
}

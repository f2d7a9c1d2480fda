package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillur/internal/domain"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) List(ctx context.Context) ([]domain.PremiumPlan, error) {
	var plans []domain.PremiumPlan
	err := r.db.WithContext(ctx).Order("price asc").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PremiumPlan, error) {
	var plan domain.PremiumPlan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// SeedDefaults loads the reference plans on first boot. Existing rows win.
func (r *PlanRepository) SeedDefaults(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.PremiumPlan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []domain.PremiumPlan{
		{ID: uuid.New(), Name: "Starter", Price: 99, CoinsPerMonth: 50},
		{ID: uuid.New(), Name: "Scholar", Price: 199, CoinsPerMonth: 120},
		{ID: uuid.New(), Name: "Achiever", Price: 299, CoinsPerMonth: 200},
	}
	return r.db.WithContext(ctx).Create(&plans).Error
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillur/internal/domain"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) ListByChapter(ctx context.Context, chapterID uuid.UUID) ([]domain.Card, error) {
	var cards []domain.Card
	err := r.db.WithContext(ctx).
		Where("chapter_id = ?", chapterID).
		Order("order_index asc").
		Find(&cards).Error
	return cards, err
}

func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var card domain.Card
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) Create(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if card.OrderIndex <= 0 {
			next, err := nextOrderIndex(tx, &domain.Card{}, "chapter_id = ?", card.ChapterID)
			if err != nil {
				return err
			}
			card.OrderIndex = next
		}
		return tx.Create(card).Error
	})
}

func (r *CardRepository) Update(ctx context.Context, card *domain.Card) error {
	return r.db.WithContext(ctx).Omit("created_at").Save(card).Error
}

func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card domain.Card
		if err := tx.Where("id = ?", id).First(&card).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCardNotFound
			}
			return err
		}
		if err := tx.Delete(&card).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Card{}).
			Where("chapter_id = ? AND order_index > ?", card.ChapterID, card.OrderIndex).
			Update("order_index", gorm.Expr("order_index - 1")).Error
	})
}

func (r *CardRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Card{}).Count(&count).Error
	return count, err
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillur/internal/domain"
)

type ChapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{db: db}
}

func (r *ChapterRepository) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]domain.Chapter, error) {
	var chapters []domain.Chapter
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("order_index asc").
		Find(&chapters).Error
	return chapters, err
}

func (r *ChapterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Chapter, error) {
	var chapter domain.Chapter
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&chapter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChapterNotFound
		}
		return nil, err
	}
	return &chapter, nil
}

// Create appends the chapter to the end of its subject when the client did not
// pick a position.
func (r *ChapterRepository) Create(ctx context.Context, chapter *domain.Chapter) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if chapter.OrderIndex <= 0 {
			next, err := nextOrderIndex(tx, &domain.Chapter{}, "subject_id = ?", chapter.SubjectID)
			if err != nil {
				return err
			}
			chapter.OrderIndex = next
		}
		return tx.Create(chapter).Error
	})
}

// Update writes the full record except created_at, which only the insert owns.
func (r *ChapterRepository) Update(ctx context.Context, chapter *domain.Chapter) error {
	return r.db.WithContext(ctx).Omit("created_at").Save(chapter).Error
}

// Delete removes the chapter and closes the gap it leaves in order_index. The
// row is read through tx so the order_index used for re-sequencing is the one
// the delete commits against.
func (r *ChapterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chapter domain.Chapter
		if err := tx.Where("id = ?", id).First(&chapter).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrChapterNotFound
			}
			return err
		}
		if err := tx.Delete(&chapter).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Chapter{}).
			Where("subject_id = ? AND order_index > ?", chapter.SubjectID, chapter.OrderIndex).
			Update("order_index", gorm.Expr("order_index - 1")).Error
	})
}

func (r *ChapterRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Chapter{}).Count(&count).Error
	return count, err
}

func nextOrderIndex(tx *gorm.DB, model interface{}, cond string, args ...interface{}) (int, error) {
	var max *int
	err := tx.Model(model).Where(cond, args...).
		Select("MAX(order_index)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

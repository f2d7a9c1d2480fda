package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillur/internal/domain"
)

var ErrAlreadyUnlocked = errors.New("chapter already unlocked")

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Exists(ctx context.Context, userID, chapterID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserProgress{}).
		Where("user_id = ? AND chapter_id = ?", userID, chapterID).
		Count(&count).Error
	return count > 0, err
}

// Unlock grants access and debits the price as one transaction: the grant row
// and the conditional coin debit commit together or not at all. A concurrent
// duplicate attempt trips the (user_id, chapter_id) unique index and reports
// ErrAlreadyUnlocked; a balance below the price rolls the grant back with
// domain.ErrInsufficientCoins.
func (r *ProgressRepository) Unlock(ctx context.Context, userID uuid.UUID, chapter *domain.Chapter) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress := &domain.UserProgress{
			ID:        uuid.New(),
			UserID:    userID,
			ChapterID: chapter.ID,
			SubjectID: chapter.SubjectID,
		}
		if err := tx.Create(progress).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyUnlocked
			}
			return err
		}

		result := tx.Model(&domain.Profile{}).
			Where("id = ? AND coins >= ?", userID, chapter.Price()).
			Update("coins", gorm.Expr("coins - ?", chapter.Price()))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrInsufficientCoins
		}
		return nil
	})
}

func (r *ProgressRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserProgress{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// UnlockedChapterIDs returns which of the given chapters the user holds a
// grant for. Used to flag chapter listings without one query per chapter.
func (r *ProgressRepository) UnlockedChapterIDs(ctx context.Context, userID uuid.UUID, chapterIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if len(chapterIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}
	var rows []domain.UserProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND chapter_id IN ?", userID, chapterIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	unlocked := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		unlocked[row.ChapterID] = true
	}
	return unlocked, nil
}

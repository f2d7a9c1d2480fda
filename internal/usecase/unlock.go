package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"skillur/internal/domain"
	"skillur/internal/pkg/logger"
	"skillur/internal/repository"
)

// ProgressStore is the slice of the progress repository the unlock flow uses.
type ProgressStore interface {
	Exists(ctx context.Context, userID, chapterID uuid.UUID) (bool, error)
	Unlock(ctx context.Context, userID uuid.UUID, chapter *domain.Chapter) error
}

type UnlockUseCase struct {
	profileRepo  *repository.ProfileRepository
	chapterRepo  *repository.ChapterRepository
	progressRepo ProgressStore
	log          *logger.Logger
}

func NewUnlockUseCase(
	pr *repository.ProfileRepository,
	chr *repository.ChapterRepository,
	pgr ProgressStore,
	log *logger.Logger,
) *UnlockUseCase {
	return &UnlockUseCase{
		profileRepo:  pr,
		chapterRepo:  chr,
		progressRepo: pgr,
		log:          log,
	}
}

type UnlockResult struct {
	AlreadyUnlocked bool `json:"already_unlocked"`
	Coins           int  `json:"coins"`
}

// Unlock grants access to a coin-priced chapter in exchange for a one-time
// debit. Re-invoking on an unlocked chapter succeeds without touching the
// balance. The grant and the debit are a single transaction, so no partial
// state can leak out of a failure.
func (uc *UnlockUseCase) Unlock(ctx context.Context, userID, chapterID uuid.UUID) (*UnlockResult, error) {
	chapter, err := uc.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if chapter.Free() {
		return &UnlockResult{AlreadyUnlocked: true, Coins: profile.Coins}, nil
	}

	unlocked, err := uc.progressRepo.Exists(ctx, userID, chapterID)
	if err != nil {
		return nil, err
	}
	if unlocked {
		return &UnlockResult{AlreadyUnlocked: true, Coins: profile.Coins}, nil
	}

	if profile.Coins < chapter.Price() {
		return nil, domain.ErrInsufficientCoins
	}

	if err := uc.progressRepo.Unlock(ctx, userID, chapter); err != nil {
		if errors.Is(err, repository.ErrAlreadyUnlocked) {
			// Lost a race against a duplicate request; the other one paid.
			// Re-read so the reported balance includes its debit.
			settled, rerr := uc.profileRepo.GetByID(ctx, userID)
			if rerr != nil {
				return nil, rerr
			}
			return &UnlockResult{AlreadyUnlocked: true, Coins: settled.Coins}, nil
		}
		return nil, err
	}

	uc.log.Info("chapter unlocked",
		"user_id", userID, "chapter_id", chapterID, "price", chapter.Price())

	updated, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UnlockResult{Coins: updated.Coins}, nil
}

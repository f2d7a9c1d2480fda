package usecase

import (
	"context"

	"github.com/google/uuid"

	"skillur/internal/domain"
	"skillur/internal/repository"
)

type ContentUseCase struct {
	subjectRepo  *repository.SubjectRepository
	chapterRepo  *repository.ChapterRepository
	cardRepo     *repository.CardRepository
	progressRepo *repository.ProgressRepository
}

func NewContentUseCase(
	sr *repository.SubjectRepository,
	chr *repository.ChapterRepository,
	cr *repository.CardRepository,
	pr *repository.ProgressRepository,
) *ContentUseCase {
	return &ContentUseCase{
		subjectRepo:  sr,
		chapterRepo:  chr,
		cardRepo:     cr,
		progressRepo: pr,
	}
}

// ChapterAccess pairs a chapter with the caller's access decision.
type ChapterAccess struct {
	domain.Chapter
	Unlocked bool `json:"unlocked"`
}

func (uc *ContentUseCase) Subjects(ctx context.Context, class string) ([]domain.Subject, error) {
	return uc.subjectRepo.List(ctx, class)
}

func (uc *ContentUseCase) Subject(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	return uc.subjectRepo.GetByID(ctx, id)
}

func (uc *ContentUseCase) Chapters(ctx context.Context, userID, subjectID uuid.UUID) ([]ChapterAccess, error) {
	if _, err := uc.subjectRepo.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}
	chapters, err := uc.chapterRepo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(chapters))
	for _, ch := range chapters {
		if !ch.Free() {
			ids = append(ids, ch.ID)
		}
	}
	unlocked, err := uc.progressRepo.UnlockedChapterIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ChapterAccess, 0, len(chapters))
	for _, ch := range chapters {
		out = append(out, ChapterAccess{
			Chapter:  ch,
			Unlocked: ch.Free() || unlocked[ch.ID],
		})
	}
	return out, nil
}

func (uc *ContentUseCase) Chapter(ctx context.Context, userID, chapterID uuid.UUID) (*ChapterAccess, error) {
	chapter, err := uc.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	unlocked, err := uc.IsUnlocked(ctx, userID, chapter)
	if err != nil {
		return nil, err
	}
	return &ChapterAccess{Chapter: *chapter, Unlocked: unlocked}, nil
}

// Cards enforces the gate: a locked chapter's cards are never listed.
func (uc *ContentUseCase) Cards(ctx context.Context, userID, chapterID uuid.UUID) ([]domain.Card, error) {
	chapter, err := uc.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	unlocked, err := uc.IsUnlocked(ctx, userID, chapter)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		return nil, domain.ErrChapterLocked
	}
	return uc.cardRepo.ListByChapter(ctx, chapterID)
}

// IsUnlocked is evaluated per request, access is coin-based for every role.
func (uc *ContentUseCase) IsUnlocked(ctx context.Context, userID uuid.UUID, chapter *domain.Chapter) (bool, error) {
	if chapter.Free() {
		return true, nil
	}
	return uc.progressRepo.Exists(ctx, userID, chapter.ID)
}

package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"skillur/internal/domain"
	"skillur/internal/repository"
)

var ErrInvalidClass = errors.New("invalid class")

type AdminUseCase struct {
	subjectRepo *repository.SubjectRepository
	chapterRepo *repository.ChapterRepository
	cardRepo    *repository.CardRepository
	profileRepo *repository.ProfileRepository
}

func NewAdminUseCase(
	sr *repository.SubjectRepository,
	chr *repository.ChapterRepository,
	cr *repository.CardRepository,
	pr *repository.ProfileRepository,
) *AdminUseCase {
	return &AdminUseCase{
		subjectRepo: sr,
		chapterRepo: chr,
		cardRepo:    cr,
		profileRepo: pr,
	}
}

func (uc *AdminUseCase) CreateSubject(ctx context.Context, subject *domain.Subject) error {
	if !domain.ValidClass(subject.Class) {
		return ErrInvalidClass
	}
	subject.ID = uuid.New()
	return uc.subjectRepo.Create(ctx, subject)
}

func (uc *AdminUseCase) UpdateSubject(ctx context.Context, subject *domain.Subject) error {
	if !domain.ValidClass(subject.Class) {
		return ErrInvalidClass
	}
	if _, err := uc.subjectRepo.GetByID(ctx, subject.ID); err != nil {
		return err
	}
	return uc.subjectRepo.Update(ctx, subject)
}

func (uc *AdminUseCase) DeleteSubject(ctx context.Context, id uuid.UUID) error {
	return uc.subjectRepo.Delete(ctx, id)
}

func (uc *AdminUseCase) CreateChapter(ctx context.Context, chapter *domain.Chapter) error {
	if _, err := uc.subjectRepo.GetByID(ctx, chapter.SubjectID); err != nil {
		return err
	}
	chapter.ID = uuid.New()
	return uc.chapterRepo.Create(ctx, chapter)
}

func (uc *AdminUseCase) UpdateChapter(ctx context.Context, chapter *domain.Chapter) error {
	if _, err := uc.chapterRepo.GetByID(ctx, chapter.ID); err != nil {
		return err
	}
	return uc.chapterRepo.Update(ctx, chapter)
}

func (uc *AdminUseCase) DeleteChapter(ctx context.Context, id uuid.UUID) error {
	return uc.chapterRepo.Delete(ctx, id)
}

func (uc *AdminUseCase) CreateCard(ctx context.Context, card *domain.Card) error {
	if _, err := uc.chapterRepo.GetByID(ctx, card.ChapterID); err != nil {
		return err
	}
	card.ID = uuid.New()
	return uc.cardRepo.Create(ctx, card)
}

func (uc *AdminUseCase) UpdateCard(ctx context.Context, card *domain.Card) error {
	if _, err := uc.cardRepo.GetByID(ctx, card.ID); err != nil {
		return err
	}
	return uc.cardRepo.Update(ctx, card)
}

func (uc *AdminUseCase) DeleteCard(ctx context.Context, id uuid.UUID) error {
	return uc.cardRepo.Delete(ctx, id)
}

type PlatformStats struct {
	Subjects int64 `json:"subjects"`
	Chapters int64 `json:"chapters"`
	Cards    int64 `json:"cards"`
	Students int64 `json:"students"`
}

func (uc *AdminUseCase) Stats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}
	var err error
	if stats.Subjects, err = uc.subjectRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Chapters, err = uc.chapterRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Cards, err = uc.cardRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Students, err = uc.profileRepo.CountStudents(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

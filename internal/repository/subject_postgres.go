package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillur/internal/cache"
	"skillur/internal/domain"
)

type SubjectRepository struct {
	db    *gorm.DB
	cache *cache.SubjectCache
}

// cache may be nil, listing then always hits the database.
func NewSubjectRepository(db *gorm.DB, c *cache.SubjectCache) *SubjectRepository {
	return &SubjectRepository{db: db, cache: c}
}

func (r *SubjectRepository) List(ctx context.Context, class string) ([]domain.Subject, error) {
	if r.cache != nil {
		if subjects, ok := r.cache.Get(ctx, class); ok {
			return subjects, nil
		}
	}

	var subjects []domain.Subject
	err := r.db.WithContext(ctx).
		Where("class = ?", class).
		Order("name asc").
		Find(&subjects).Error
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Set(ctx, class, subjects)
	}
	return subjects, nil
}

func (r *SubjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	var subject domain.Subject
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&subject).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubjectNotFound
		}
		return nil, err
	}
	return &subject, nil
}

func (r *SubjectRepository) Create(ctx context.Context, subject *domain.Subject) error {
	if err := r.db.WithContext(ctx).Create(subject).Error; err != nil {
		return err
	}
	r.invalidate(ctx, subject.Class)
	return nil
}

func (r *SubjectRepository) Update(ctx context.Context, subject *domain.Subject) error {
	if err := r.db.WithContext(ctx).Omit("created_at").Save(subject).Error; err != nil {
		return err
	}
	r.invalidate(ctx, subject.Class)
	return nil
}

func (r *SubjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	subject, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(subject).Error; err != nil {
		return err
	}
	r.invalidate(ctx, subject.Class)
	return nil
}

func (r *SubjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Subject{}).Count(&count).Error
	return count, err
}

func (r *SubjectRepository) invalidate(ctx context.Context, class string) {
	if r.cache != nil {
		r.cache.Invalidate(ctx, class)
	}
}

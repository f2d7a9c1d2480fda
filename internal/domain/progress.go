package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserProgress records a permanent chapter unlock. One row per (user, chapter)
// is the single source of truth for access.
type UserProgress struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_chapter"`
	ChapterID   uuid.UUID `json:"chapter_id" gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_chapter"`
	SubjectID   uuid.UUID `json:"subject_id" gorm:"type:uuid;index"`
	CompletedAt time.Time `json:"completed_at" gorm:"autoCreateTime"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

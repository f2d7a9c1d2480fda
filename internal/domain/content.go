package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrChapterNotFound = errors.New("chapter not found")
	ErrCardNotFound    = errors.New("card not found")
	ErrChapterLocked   = errors.New("chapter is locked")
)

type Subject struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex:idx_subjects_class_name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Class       string    `json:"class" gorm:"index;size:2;uniqueIndex:idx_subjects_class_name"`

	Chapters []Chapter `json:"-" gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subject) TableName() string {
	return "subjects"
}

type Chapter struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SubjectID   uuid.UUID `json:"subject_id" gorm:"type:uuid;index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order_index"`

	// nil means the chapter is free.
	CoinPrice *int `json:"coin_price"`

	Cards []Card `json:"-" gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Chapter) TableName() string {
	return "chapters"
}

func (ch *Chapter) Free() bool {
	return ch.CoinPrice == nil
}

func (ch *Chapter) Price() int {
	if ch.CoinPrice == nil {
		return 0
	}
	return *ch.CoinPrice
}

type Card struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ChapterID   uuid.UUID `json:"chapter_id" gorm:"type:uuid;index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order_index"`
	PageNumber  *int      `json:"page_number"`
	PDFUrl      string    `json:"pdf_url" gorm:"column:pdf_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Card) TableName() string {
	return "cards"
}

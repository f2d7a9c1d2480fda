package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrInsufficientCoins = errors.New("insufficient coins")
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Classes covered by the platform (grade levels).
var Classes = []string{"6", "7", "8", "9", "10"}

type Profile struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SCSNumber   string    `json:"scs_number" gorm:"column:scs_number;uniqueIndex;not null;size:7"`
	PhoneNumber string    `json:"phone_number" gorm:"size:20"`
	Role        string    `json:"role" gorm:"default:'student'"`
	Class       string    `json:"class" gorm:"index;size:2"`

	Coins   int  `json:"coins" gorm:"not null;default:0"`
	IsAdmin bool `json:"is_admin" gorm:"default:false"`

	IsPremium        bool       `json:"is_premium" gorm:"default:false"`
	PremiumExpiresAt *time.Time `json:"premium_expires_at"`

	ReferralCount int        `json:"referral_count" gorm:"not null;default:0"`
	ReferredBy    *uuid.UUID `json:"referred_by" gorm:"type:uuid"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func ValidClass(class string) bool {
	for _, c := range Classes {
		if c == class {
			return true
		}
	}
	return false
}

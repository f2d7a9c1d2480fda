package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// EmailDomain is appended to the SCS number to form the credential email.
const EmailDomain = "skillur.app"

type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:100"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// SCSEmail synthesizes the login email from a 7-digit SCS number.
func SCSEmail(scsNumber string) string {
	return fmt.Sprintf("%s@%s", scsNumber, EmailDomain)
}

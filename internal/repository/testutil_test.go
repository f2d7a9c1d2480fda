package repository

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"skillur/internal/domain"
)

func newTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Profile{},
		&domain.Subject{},
		&domain.Chapter{},
		&domain.Card{},
		&domain.UserProgress{},
		&domain.Referral{},
		&domain.PremiumPlan{},
	); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedProfile(tb testing.TB, db *gorm.DB, scs string, coins int) *domain.Profile {
	tb.Helper()
	p := &domain.Profile{
		ID:        uuid.New(),
		SCSNumber: scs,
		Role:      domain.RoleStudent,
		Class:     "7",
		Coins:     coins,
	}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func seedSubject(tb testing.TB, db *gorm.DB, name string) *domain.Subject {
	tb.Helper()
	s := &domain.Subject{
		ID:    uuid.New(),
		Name:  name,
		Class: "7",
	}
	if err := db.Create(s).Error; err != nil {
		tb.Fatalf("seed subject: %v", err)
	}
	return s
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"skillur/config"
	"skillur/internal/cache"
	"skillur/internal/domain"
	"skillur/internal/middleware"
	"skillur/internal/pkg/logger"
	"skillur/internal/repository"
	"skillur/internal/security"
	handlers "skillur/internal/transport/http"
	"skillur/internal/usecase"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.AppMode)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logg.Sync()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logg.Fatal("Failed to connect to DB", "error", err)
	}
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
		logg.Fatal("Failed to migrate DB", "error", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logg.Fatal("Failed to connect to Redis", "error", err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	subjectRepo := repository.NewSubjectRepository(db, cache.NewSubjectCache(rdb))
	chapterRepo := repository.NewChapterRepository(db)
	cardRepo := repository.NewCardRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	planRepo := repository.NewPlanRepository(db)

	if err := planRepo.SeedDefaults(context.Background()); err != nil {
		logg.Fatal("Failed to seed premium plans", "error", err)
	}

	tokenCache := cache.NewTokenCache(rdb)
	hasher := security.NewPasswordHasher()
	tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)

	referralUC := usecase.NewReferralUseCase(referralRepo, cfg.FrontendURL, logg)
	authUC := usecase.NewAuthUseCase(userRepo, tokenCache, hasher, tokenManager, referralUC, logg)
	contentUC := usecase.NewContentUseCase(subjectRepo, chapterRepo, cardRepo, progressRepo)
	unlockUC := usecase.NewUnlockUseCase(profileRepo, chapterRepo, progressRepo, logg)
	adminUC := usecase.NewAdminUseCase(subjectRepo, chapterRepo, cardRepo, profileRepo)
	planUC := usecase.NewPlanUseCase(planRepo, logg)
	dashboardUC := usecase.NewDashboardUseCase(profileRepo, subjectRepo, progressRepo, referralRepo)

	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:        handlers.NewAuthHandler(authUC),
		Profile:     handlers.NewProfileHandler(profileRepo, referralUC, dashboardUC),
		Content:     handlers.NewContentHandler(contentUC, unlockUC, profileRepo),
		Admin:       handlers.NewAdminHandler(adminUC),
		Plans:       handlers.NewPlanHandler(planUC),
		AuthUseCase: authUC,
		Profiles:    profileRepo,
		Limiter:     middleware.NewRateLimiter(rdb),
		FrontendURL: cfg.FrontendURL,
	})

	server := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logg.Info("Skillur API running", "addr", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("Failed to serve", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logg.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logg.Error("Forced shutdown", "error", err)
	}
}

package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"skillur/internal/domain"
	"skillur/internal/middleware"
	"skillur/internal/repository"
	"skillur/internal/usecase"
)

type RouterDeps struct {
	Auth        *AuthHandler
	Profile     *ProfileHandler
	Content     *ContentHandler
	Admin       *AdminHandler
	Plans       *PlanHandler
	AuthUseCase *usecase.AuthUseCase
	Profiles    *repository.ProfileRepository
	Limiter     *middleware.RateLimiter
	FrontendURL string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{deps.FrontendURL}
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", deps.Limiter.Limit("register", 3, 5*time.Minute), deps.Auth.Register)
			auth.POST("/login", deps.Limiter.Limit("login", 5, 1*time.Minute), deps.Auth.Login)
			auth.POST("/refresh", deps.Auth.Refresh)
			auth.POST("/logout", deps.Auth.Logout)
		}

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(deps.AuthUseCase))
		{
			authed.GET("/profile", deps.Profile.GetProfile)
			authed.GET("/profile/referral-link", deps.Profile.ReferralLink)
			authed.GET("/profile/referrals", deps.Profile.Referrals)
			authed.GET("/dashboard", deps.Profile.Dashboard)

			authed.GET("/subjects", deps.Content.ListSubjects)
			authed.GET("/subjects/:id", deps.Content.GetSubject)
			authed.GET("/subjects/:id/chapters", deps.Content.ListChapters)
			authed.GET("/chapters/:id", deps.Content.GetChapter)
			authed.GET("/chapters/:id/cards", deps.Content.ListCards)
			authed.POST("/chapters/:id/unlock", deps.Content.UnlockChapter)

			authed.GET("/plans", deps.Plans.List)
			authed.POST("/plans/:id/subscribe", deps.Plans.Subscribe)

			admin := authed.Group("/admin")
			admin.Use(middleware.RequireCapability(deps.Profiles, domain.CapManageContent))
			{
				admin.GET("/stats", deps.Admin.Stats)

				admin.POST("/subjects", deps.Admin.CreateSubject)
				admin.PUT("/subjects/:id", deps.Admin.UpdateSubject)
				admin.DELETE("/subjects/:id", deps.Admin.DeleteSubject)

				admin.POST("/chapters", deps.Admin.CreateChapter)
				admin.PUT("/chapters/:id", deps.Admin.UpdateChapter)
				admin.DELETE("/chapters/:id", deps.Admin.DeleteChapter)

				admin.POST("/cards", deps.Admin.CreateCard)
				admin.PUT("/cards/:id", deps.Admin.UpdateCard)
				admin.DELETE("/cards/:id", deps.Admin.DeleteCard)
			}
		}
	}

	return r
}

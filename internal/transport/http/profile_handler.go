package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillur/internal/middleware"
	"skillur/internal/repository"
	"skillur/internal/usecase"
)

type ProfileHandler struct {
	profiles  *repository.ProfileRepository
	referral  *usecase.ReferralUseCase
	dashboard *usecase.DashboardUseCase
}

func NewProfileHandler(
	pr *repository.ProfileRepository,
	ref *usecase.ReferralUseCase,
	dash *usecase.DashboardUseCase,
) *ProfileHandler {
	return &ProfileHandler{profiles: pr, referral: ref, dashboard: dash}
}

// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.profiles.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GET /api/v1/profile/referral-link
func (h *ProfileHandler) ReferralLink(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.profiles.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"referral_link":  h.referral.Link(profile),
		"referral_count": profile.ReferralCount,
	})
}

// GET /api/v1/profile/referrals
func (h *ProfileHandler) Referrals(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	referrals, err := h.referral.ListByReferrer(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"referrals": referrals})
}

// GET /api/v1/dashboard
func (h *ProfileHandler) Dashboard(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dash, err := h.dashboard.Student(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dash)
}

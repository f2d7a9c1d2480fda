package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillur/internal/usecase"
)

type AuthHandler struct {
	auth *usecase.AuthUseCase
}

func NewAuthHandler(auth *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerReq struct {
	SCSNumber    string `json:"scs_number" binding:"required,len=7,numeric"`
	Password     string `json:"password" binding:"required,min=6"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	Class        string `json:"class" binding:"omitempty,oneof=6 7 8 9 10"`
	ReferralCode string `json:"referral_code" binding:"omitempty,len=7,numeric"`
}

type loginReq struct {
	SCSNumber string `json:"scs_number" binding:"required,len=7,numeric"`
	Password  string `json:"password" binding:"required"`
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		SCSNumber:    req.SCSNumber,
		Password:     req.Password,
		PhoneNumber:  req.PhoneNumber,
		Class:        req.Class,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": userID})
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, refresh, err := h.auth.Login(c.Request.Context(), req.SCSNumber, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.SetCookie("refresh_token", refresh, 7*24*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"access_token": access})
}

// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
		return
	}

	access, refresh, err := h.auth.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	c.SetCookie("refresh_token", refresh, 7*24*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"access_token": access})
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err == nil && refreshToken != "" {
		_ = h.auth.Logout(c.Request.Context(), refreshToken)
	}
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skillur/internal/domain"
	"skillur/internal/middleware"
	"skillur/internal/usecase"
)

type PlanHandler struct {
	plans *usecase.PlanUseCase
}

func NewPlanHandler(plans *usecase.PlanUseCase) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// GET /api/v1/plans
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// POST /api/v1/plans/:id/subscribe
// Payment processing is not wired yet; the endpoint only acknowledges intent.
func (h *PlanHandler) Subscribe(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	plan, err := h.plans.Subscribe(c.Request.Context(), userID, planID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"plan":    plan.Name,
		"message": "Payment processing is not available yet",
	})
}

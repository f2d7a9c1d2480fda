package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skillur/internal/domain"
	"skillur/internal/middleware"
	"skillur/internal/repository"
	"skillur/internal/usecase"
)

type ContentHandler struct {
	content  *usecase.ContentUseCase
	unlock   *usecase.UnlockUseCase
	profiles *repository.ProfileRepository
}

func NewContentHandler(
	content *usecase.ContentUseCase,
	unlock *usecase.UnlockUseCase,
	profiles *repository.ProfileRepository,
) *ContentHandler {
	return &ContentHandler{content: content, unlock: unlock, profiles: profiles}
}

// GET /api/v1/subjects?class=7
// Without the query param the caller's own class is used.
func (h *ContentHandler) ListSubjects(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	class := c.Query("class")
	if class == "" {
		profile, err := h.profiles.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		class = profile.Class
	}
	if !domain.ValidClass(class) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class"})
		return
	}

	subjects, err := h.content.Subjects(c.Request.Context(), class)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

// GET /api/v1/subjects/:id
func (h *ContentHandler) GetSubject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	subject, err := h.content.Subject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSubjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subject not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, subject)
}

// GET /api/v1/subjects/:id/chapters
func (h *ContentHandler) ListChapters(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	chapters, err := h.content.Chapters(c.Request.Context(), userID, subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrSubjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subject not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapters": chapters})
}

// GET /api/v1/chapters/:id
func (h *ContentHandler) GetChapter(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	chapter, err := h.content.Chapter(c.Request.Context(), userID, chapterID)
	if err != nil {
		if errors.Is(err, domain.ErrChapterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chapter not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, chapter)
}

// GET /api/v1/chapters/:id/cards
func (h *ContentHandler) ListCards(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	cards, err := h.content.Cards(c.Request.Context(), userID, chapterID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrChapterNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Chapter not found"})
		case errors.Is(err, domain.ErrChapterLocked):
			c.JSON(http.StatusForbidden, gin.H{"error": "Chapter is locked"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// POST /api/v1/chapters/:id/unlock
func (h *ContentHandler) UnlockChapter(c *gin.Context) {
	userID, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	chapterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	result, err := h.unlock.Unlock(c.Request.Context(), userID, chapterID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrChapterNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Chapter not found"})
		case errors.Is(err, domain.ErrInsufficientCoins):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Insufficient coins"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlock chapter"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

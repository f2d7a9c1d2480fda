package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skillur/internal/domain"
	"skillur/internal/usecase"
)

type AdminHandler struct {
	admin *usecase.AdminUseCase
}

func NewAdminHandler(admin *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type subjectReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Class       string `json:"class" binding:"required,oneof=6 7 8 9 10"`
}

type chapterReq struct {
	SubjectID   uuid.UUID `json:"subject_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order_index" binding:"omitempty,min=1"`
	CoinPrice   *int      `json:"coin_price" binding:"omitempty,min=1"`
}

type cardReq struct {
	ChapterID   uuid.UUID `json:"chapter_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	OrderIndex  int       `json:"order_index" binding:"omitempty,min=1"`
	PageNumber  *int      `json:"page_number" binding:"omitempty,min=1"`
	PDFUrl      string    `json:"pdf_url" binding:"omitempty,url"`
}

// POST /api/v1/admin/subjects
func (h *AdminHandler) CreateSubject(c *gin.Context) {
	var req subjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject := &domain.Subject{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		Class:       req.Class,
	}
	if err := h.admin.CreateSubject(c.Request.Context(), subject); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, subject)
}

// PUT /api/v1/admin/subjects/:id
func (h *AdminHandler) UpdateSubject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req subjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject := &domain.Subject{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		Class:       req.Class,
	}
	if err := h.admin.UpdateSubject(c.Request.Context(), subject); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, subject)
}

// DELETE /api/v1/admin/subjects/:id
func (h *AdminHandler) DeleteSubject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.admin.DeleteSubject(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /api/v1/admin/chapters
func (h *AdminHandler) CreateChapter(c *gin.Context) {
	var req chapterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chapter := &domain.Chapter{
		SubjectID:   req.SubjectID,
		Title:       req.Title,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
		CoinPrice:   req.CoinPrice,
	}
	if err := h.admin.CreateChapter(c.Request.Context(), chapter); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chapter)
}

// PUT /api/v1/admin/chapters/:id
func (h *AdminHandler) UpdateChapter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req chapterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chapter := &domain.Chapter{
		ID:          id,
		SubjectID:   req.SubjectID,
		Title:       req.Title,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
		CoinPrice:   req.CoinPrice,
	}
	if err := h.admin.UpdateChapter(c.Request.Context(), chapter); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

// DELETE /api/v1/admin/chapters/:id
func (h *AdminHandler) DeleteChapter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.admin.DeleteChapter(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /api/v1/admin/cards
func (h *AdminHandler) CreateCard(c *gin.Context) {
	var req cardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card := &domain.Card{
		ChapterID:   req.ChapterID,
		Title:       req.Title,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
		PageNumber:  req.PageNumber,
		PDFUrl:      req.PDFUrl,
	}
	if err := h.admin.CreateCard(c.Request.Context(), card); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// PUT /api/v1/admin/cards/:id
func (h *AdminHandler) UpdateCard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req cardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card := &domain.Card{
		ID:          id,
		ChapterID:   req.ChapterID,
		Title:       req.Title,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
		PageNumber:  req.PageNumber,
		PDFUrl:      req.PDFUrl,
	}
	if err := h.admin.UpdateCard(c.Request.Context(), card); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// DELETE /api/v1/admin/cards/:id
func (h *AdminHandler) DeleteCard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.admin.DeleteCard(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSubjectNotFound),
		errors.Is(err, domain.ErrChapterNotFound),
		errors.Is(err, domain.ErrCardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidClass):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

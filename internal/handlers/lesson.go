package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/opencourses/backend/internal/logger"
	"github.com/opencourses/backend/internal/services"
)

type LessonHandler struct {
	log           *logger.Logger
	lessonService services.LessonService
}

func NewLessonHandler(baseLog *logger.Logger, lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{
		log:           baseLog.With("handler", "LessonHandler"),
		lessonService: lessonService,
	}
}

// GET /api/lessons/course/:courseId
func (h *LessonHandler) ListByCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	lessons, err := h.lessonService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.log.Error("ListByCourse failed", "error", err, "course_id", courseID)
		respondDomainError(c, err)
		return
	}
	RespondOK(c, lessons)
}

// POST /api/lessons
func (h *LessonHandler) Create(c *gin.Context) {
	var req struct {
		CourseID uuid.UUID `json:"course_id" binding:"required"`
		Title    string    `json:"title" binding:"required"`
		Order    int       `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	id, err := h.lessonService.Create(c.Request.Context(), req.CourseID, req.Title, req.Order)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": id})
}

// PUT /api/lessons/:id
func (h *LessonHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	var req struct {
		Title string `json:"title" binding:"required"`
		Order int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	if err := h.lessonService.Update(c.Request.Context(), id, req.Title, req.Order); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/lessons/:id
func (h *LessonHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	if err := h.lessonService.Delete(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PATCH /api/lessons/:id/reorder?direction=up|down
func (h *LessonHandler) Reorder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	direction := services.MoveDirection(c.Query("direction"))
	if direction != services.MoveUp && direction != services.MoveDown {
		RespondError(c, http.StatusBadRequest, "invalid_direction", errors.New("direction must be 'up' or 'down'"))
		return
	}

	moved, err := h.lessonService.Reorder(c.Request.Context(), id, direction)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if !moved {
		RespondError(c, http.StatusBadRequest, "no_movement", errors.New("cannot move in that direction"))
		return
	}
	c.Status(http.StatusNoContent)
}

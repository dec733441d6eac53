package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencourses/backend/internal/types"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondDomainError translates the typed domain failures to status codes:
// NotFound -> 404, invalid state / duplicate order -> 400, anything else 500.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, types.ErrInvalidState):
		RespondError(c, http.StatusBadRequest, "invalid_state", err)
	case errors.Is(err, types.ErrDuplicateOrder):
		RespondError(c, http.StatusBadRequest, "duplicate_order", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}

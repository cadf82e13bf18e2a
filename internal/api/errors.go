package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nexta-backend-go/internal/core"
	"nexta-backend-go/internal/middleware"
)

// writeError maps service errors to HTTP status codes. Unexpected errors are
// logged and answered with a generic 500.
func (h *Handlers) writeError(c *gin.Context, err error) {
	var status int
	var resp ErrorResponse

	switch {
	case errors.Is(err, core.ErrInvalidInput):
		status = http.StatusBadRequest
		resp = ErrorResponse{Error: "Invalid request", Details: err.Error()}
	case errors.Is(err, core.ErrForbidden):
		status = http.StatusForbidden
		resp = ErrorResponse{Error: core.ErrForbidden.Error(), Details: err.Error()}
	case errors.Is(err, core.ErrUserNotFound):
		status = http.StatusNotFound
		resp = ErrorResponse{Error: "User not found"}
	case errors.Is(err, core.ErrProfileNotFound):
		status = http.StatusNotFound
		resp = ErrorResponse{Error: core.ErrProfileNotFound.Error()}
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
		resp = ErrorResponse{Error: "Not found"}
	case errors.Is(err, core.ErrAlreadyApplied):
		status = http.StatusConflict
		resp = ErrorResponse{Error: core.ErrAlreadyApplied.Error()}
	case errors.Is(err, core.ErrInvalidTransition):
		status = http.StatusConflict
		resp = ErrorResponse{Error: core.ErrInvalidTransition.Error(), Details: err.Error()}
	case errors.Is(err, core.ErrEmptyCart):
		status = http.StatusBadRequest
		resp = ErrorResponse{Error: core.ErrEmptyCart.Error()}
	default:
		h.logger.Error("Unhandled service error",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.ContextRequestID)),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		resp = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	_ = c.Error(err)
	c.JSON(status, resp)
}

func badRequest(c *gin.Context, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

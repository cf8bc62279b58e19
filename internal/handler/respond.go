package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"syncboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges writes that return no entity.
type SuccessResponse struct {
	Success bool `json:"success"`
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindValidation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError maps a service error to its HTTP status and logs it. Only the
// service message reaches the client; causes stay in the log.
func respondError(c *gin.Context, err error) {
	status, message := logFailure(c, err)
	c.JSON(status, ErrorResponse{Error: message})
}

func logFailure(c *gin.Context, err error) (int, string) {
	var svcErr *service.Error
	message := "Internal server error"
	kind := service.KindUnknown
	if errors.As(err, &svcErr) {
		message = svcErr.Message
		kind = svcErr.Kind
	}
	status := statusFor(kind)

	attrs := []any{
		slog.String("method", c.Request.Method),
		slog.String("path", c.FullPath()),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", attrs...)
	} else {
		slog.WarnContext(c.Request.Context(), "request rejected", attrs...)
	}
	return status, message
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// uuidParam parses a path parameter, answering 400 when it is not a UUID.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

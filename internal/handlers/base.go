package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"ideaforge/internal/apperr"
	"ideaforge/internal/utils"

	"github.com/gin-gonic/gin"
)

var statusByKind = map[apperr.Kind]int{
	apperr.KindUnauthorized:        http.StatusUnauthorized,
	apperr.KindInvalidArgument:     http.StatusBadRequest,
	apperr.KindInsufficientCredits: http.StatusBadRequest,
	apperr.KindMaxDepthExceeded:    http.StatusBadRequest,
	apperr.KindNotFound:            http.StatusNotFound,
	apperr.KindForbidden:           http.StatusForbidden,
	apperr.KindConflict:            http.StatusConflict,
	apperr.KindInternal:            http.StatusInternalServerError,
}

// RespondError writes {"error": message} with the status for the error's kind.
// Unexpected errors are logged and reported as a generic 500.
func RespondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err)
	}

	status, ok := statusByKind[appErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": appErr.Message})
}

// bindJSON decodes the body into obj, answering 400 on malformed input.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondError(c, apperr.InvalidArgument("Invalid request body"))
		return false
	}
	return true
}

// paramID reads a numeric path parameter, answering 400 when it is malformed.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		RespondError(c, apperr.InvalidArgument("Invalid "+name))
		return 0, false
	}
	return id, true
}

package api

import (
	"errors"
	"net/http"

	"alcyxob/fittrack/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondServiceError maps service errors to HTTP statuses. Unknown errors
// are logged and hidden behind a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrTemplateExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrMealNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, service.ErrTemplateNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		log.WithField("request_id", c.GetString(ContextRequestIDKey)).Errorf("%s %s: %s", c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

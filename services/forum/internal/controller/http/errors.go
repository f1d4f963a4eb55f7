package http

import (
	"errors"
	"net/http"

	"nomadnest/pkg/logger"
	"nomadnest/services/forum/internal/entity"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto the three outcome classes callers
// see, plus 400/404 for request-level problems.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, entity.ErrUnauthenticated):
		status, message = http.StatusUnauthorized, entity.ErrUnauthenticated.Error()
	case errors.Is(err, entity.ErrPostLimitReached):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, entity.ErrForbidden):
		status, message = http.StatusForbidden, entity.ErrForbidden.Error()
	case errors.Is(err, entity.ErrNotFound):
		status, message = http.StatusNotFound, entity.ErrNotFound.Error()
	case errors.Is(err, entity.ErrUpstream):
		// Logged where it was wrapped; answer the generic 500.
	default:
		log.Error("Unhandled error on %s %s: %v", c.Request.Method, c.FullPath(), err)
	}

	c.JSON(status, gin.H{"error": message})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

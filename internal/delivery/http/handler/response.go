package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto the status taxonomy: validation
// failures are 400, lookup misses on directly addressed resources are 404,
// identity failures are 401, everything else is a logged 500 with a generic
// body.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAction),
		errors.Is(err, domain.ErrCannotSwipeSelf),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrMissingDeviceID),
		errors.Is(err, domain.ErrInvalidAgeWindow),
		errors.Is(err, domain.ErrNegativeAge),
		errors.Is(err, domain.ErrNegativeDistance):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidIdentity):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		log.Error("request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

package api

import (
	"errors"
	"net/http"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/apperror"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RespondError writes err as {message} with the status of its kind.
// Unexpected errors are logged and replaced by a generic message.
func RespondError(c *gin.Context, err error) {
	var verr *ValidationErrors
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Message: verr.Error(),
			Details: verr.Fields,
		})
		return
	}

	kind := apperror.KindOf(err)
	if kind == apperror.KindUnexpected {
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	c.JSON(kind.StatusCode(), ErrorResponse{Message: apperror.PublicMessage(err)})
}

// RespondBadRequest is used for malformed bodies and path parameters.
func RespondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

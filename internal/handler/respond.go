package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wayfarerhq/wayfarer-api/internal/apperr"
	"github.com/wayfarerhq/wayfarer-api/internal/dto"
	"go.uber.org/zap"
)

// writeError maps a service error onto its HTTP response. Client errors get
// a JSON body with the error's message; anything that resolves to a 500 gets
// the bare "Server Error" body with no detail leaked.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)

	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.String(http.StatusInternalServerError, "Server Error")
		return
	}

	c.JSON(status, dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: apperr.MessageOf(err),
	})
}

// bindingError reports a gin binding failure.
func bindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Validation failed",
		Message: err.Error(),
	})
}

// callerID returns the authenticated user's id placed into the context by
// AuthMiddleware.
func callerID(c *gin.Context) string {
	id, _ := c.Get("user_id")
	s, _ := id.(string)
	return s
}

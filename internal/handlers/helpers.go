package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stockroom/internal/middleware"
)

// internalError logs err with the request id and answers with a generic 500.
func internalError(c *gin.Context, msg string, err error) {
	requestID := c.GetString(middleware.CtxRequestID)
	zap.L().Error(msg, zap.Error(err), zap.String("requestID", requestID))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":     "Internal server error",
		"requestID": requestID,
	})
}

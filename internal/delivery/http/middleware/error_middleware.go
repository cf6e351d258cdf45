package middleware

import (
	"errors"
	"net/http"

	"tvet-connect-backend/internal/delivery/http/response"
	"tvet-connect-backend/pkg/apperror"
	"tvet-connect-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				// the wrapped cause stays in the logs, never in the response
				logger.Log.Error("request failed",
					zap.String("request_id", response.RequestID(c)),
					zap.String("method", c.Request.Method),
					zap.String("path", c.FullPath()),
					zap.Error(appErr.Unwrap()),
				)
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		logger.Log.Error("unhandled error",
			zap.String("request_id", response.RequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/delivery/http/response"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := domain.RequestIDFrom(c.Request.Context())

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Kind == apperror.KindInternal {
				// Internal causes stay in the server log.
				logger.Log.Error("request failed",
					"request_id", requestID,
					"path", c.FullPath(),
					"details", appErr.Details,
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		logger.Log.Error("unhandled error", "request_id", requestID, "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", "")
	}
}

package middleware

import (
	"errors"
	"net/http"

	"go-ringside-backend/internal/delivery/http/response"
	"go-ringside-backend/pkg/apperror"
	"go-ringside-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const msgUnexpected = "サーバーエラーが発生しました。しばらく時間をおいて再度お試しください。"

// ErrorHandler renders errors appended to the context as the standard
// envelope. Diagnostic details (field lists, original error messages) are
// echoed to the client only in development mode.
func ErrorHandler(devMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			var details interface{}
			if devMode {
				details = appErr.Details
			}
			response.Error(c, appErr.Code, appErr.Message, details)
			return
		}

		// Never expose internal error details to clients in production.
		logger.Log.Error("unexpected error", "path", c.FullPath(), "error", err)
		var details interface{}
		if devMode {
			details = map[string]interface{}{
				"errorType":     "unknown",
				"originalError": err.Error(),
			}
		}
		response.Error(c, http.StatusInternalServerError, msgUnexpected, details)
	}
}

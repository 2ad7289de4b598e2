package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	appErrors "github.com/logmirror/logmirror/internal/httpd/errors"
)

// ErrorHandler converts errors attached to the gin context into JSON
// responses. It must run before all other middleware so that nothing
// swallows the errors first.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Status >= 500 {
				slog.Error("server error",
					"error", appErr.Error(),
					"code", appErr.Code,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"status", appErr.Status,
				)
			} else {
				slog.Warn("client error",
					"error", appErr.Error(),
					"code", appErr.Code,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"status", appErr.Status,
				)
			}

			c.JSON(appErr.Status, appErrors.ErrorResponse{
				Code:    appErr.Code,
				Message: appErr.Message,
			})
			return
		}

		slog.Error("unhandled error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)

		c.JSON(http.StatusInternalServerError, appErrors.ErrorResponse{
			Code:    "internal_error",
			Message: "An unexpected error occurred",
		})
	}
}

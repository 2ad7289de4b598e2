package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	appErrors "github.com/logmirror/logmirror/internal/httpd/errors"
)

// TokenAuthConfig contains the configuration for token-based authentication.
type TokenAuthConfig struct {
	Token string
}

// TokenAuth rejects requests that don't carry the configured bearer token.
func TokenAuth(config TokenAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = c.GetHeader("Authorization")
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = token[7:]
			}
		}

		if token != config.Token {
			slog.Debug("invalid auth token", "ip", c.ClientIP(), "path", c.FullPath())
			appErr := appErrors.Unauthorized("")
			c.AbortWithStatusJSON(appErr.Status, appErrors.ErrorResponse{
				Code:    appErr.Code,
				Message: appErr.Message,
			})
			return
		}

		c.Next()
	}
}

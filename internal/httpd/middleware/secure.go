package middleware

import (
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// SecureHeaders sets browser hardening headers on every response. No TLS
// directives: the server speaks plain HTTP and redirects would break
// localhost clients.
func SecureHeaders() gin.HandlerFunc {
	return secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		IENoOpen:           true,
	})
}

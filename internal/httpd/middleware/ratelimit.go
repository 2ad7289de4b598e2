package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	appErrors "github.com/logmirror/logmirror/internal/httpd/errors"
)

var rateLimitStore = memory.NewStore()

// RateLimit applies an in-memory per-IP rate limit.
// formattedRate follows the limiter notation, e.g. "20-S" or "1000-H".
func RateLimit(formattedRate string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formattedRate)
	if err != nil {
		return nil, err
	}

	lim := limiter.New(rateLimitStore, rate)
	return mgin.NewMiddleware(
		lim,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.JSON(http.StatusTooManyRequests, appErrors.ErrorResponse{
				Code:    "rate_limited",
				Message: "rate limit exceeded",
			})
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			c.JSON(http.StatusInternalServerError, appErrors.ErrorResponse{
				Code:    "internal_error",
				Message: err.Error(),
			})
		}),
	), nil
}

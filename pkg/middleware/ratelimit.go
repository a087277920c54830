package middleware

import (
	"net/http"
	"time"

	"algooee/internal/dto"
	"algooee/pkg/ratelimit"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// NewRateLimiterMiddleware limits requests per client IP.
func NewRateLimiterMiddleware(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		perSecond = 10
	}
	if burst <= 0 {
		burst = 30
	}

	config := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store:   ratelimit.NewLimiterStore(rate.Limit(perSecond), burst, 3*time.Minute),

		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},

		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, dto.NewErrorResponse("Access forbidden: rate limiter error occurred"))
		},

		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, dto.NewErrorResponse("Too many requests: rate limit exceeded, please try again later"))
		},
	}

	return middleware.RateLimiterWithConfig(config)
}

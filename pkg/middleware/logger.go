package middleware

import (
	"algooee/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewRequestLoggerMiddleware logs one line per request and stores a
// request scoped logger in the request context.
func NewRequestLoggerMiddleware(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		BeforeNextFunc: func(c echo.Context) {
			reqLog := log.With(logger.StringField("request_id", c.Response().Header().Get(echo.HeaderXRequestID)))
			ctx := logger.NewContext(c.Request().Context(), reqLog)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Warn("HTTP request failed",
					logger.StringField("method", v.Method),
					logger.StringField("uri", v.URI),
					logger.IntField("status", v.Status),
					logger.DurationField("latency", v.Latency),
					logger.StringField("request_id", v.RequestID),
					logger.ErrorField(v.Error),
				)
				return nil
			}
			log.Info("HTTP request",
				logger.StringField("method", v.Method),
				logger.StringField("uri", v.URI),
				logger.IntField("status", v.Status),
				logger.DurationField("latency", v.Latency),
				logger.StringField("request_id", v.RequestID),
				logger.StringField("remote_ip", v.RemoteIP),
			)
			return nil
		},
	})
}

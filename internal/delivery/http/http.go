package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"algooee/config"
	"algooee/internal/dto"
	"algooee/internal/service"
	"algooee/pkg/middleware"
	"algooee/pkg/utils"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HttpAPIHandler struct {
	cfg       *config.Config
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	dates     utils.DateProvider
}

func NewHttpAPIHandler(ctx context.Context, cfg *config.Config, echo *echo.Echo, validator *goValidator.Validate, service *service.Service, dates utils.DateProvider) *HttpAPIHandler {
	return &HttpAPIHandler{
		cfg:       cfg,
		echo:      echo,
		validator: validator,
		service:   service,
		dates:     dates,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.SetupUI()
	h.echo.GET("/health", h.health)
	h.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	base := h.echo.Group("/api", middleware.NewRateLimiterMiddleware(h.cfg.API.RateLimitPerSec, h.cfg.API.RateLimitBurst))
	h.SetupPrediction(base)
	h.SetupStocks(base)
}

// validationDetail turns validator errors into a short message keyed by
// the JSON field names.
func validationDetail(err error) string {
	var verrs goValidator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func (h *HttpAPIHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:        dto.StatusHealthy,
		APIConfigured: h.service.PredictionService.Configured(),
	})
}

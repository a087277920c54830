package http

import (
	"errors"
	"net/http"

	"algooee/internal/dto"
	"algooee/internal/service"
	"algooee/pkg/utils"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupPrediction(base *echo.Group) {
	base.POST("/predict", h.predict)
	base.POST("/historical-candles", h.historicalCandles)
	base.GET("/predictions", h.predictionHistory)
}

// bindPredictionRequest decodes, defaults and validates the body. It
// writes the error response itself and returns ok=false on failure.
func (h *HttpAPIHandler) bindPredictionRequest(c echo.Context) (dto.PredictionRequest, bool, error) {
	var req dto.PredictionRequest
	if err := c.Bind(&req); err != nil {
		return req, false, c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("invalid request body"))
	}

	req.ApplyDefaults(
		utils.StringOr(h.cfg.Predict.DefaultStartDate, dto.DefaultStartDate),
		utils.StringOr(h.cfg.Predict.DefaultInterval, dto.IntervalDay),
		h.dates.Today(),
	)

	if err := h.validator.Struct(req); err != nil {
		return req, false, c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(validationDetail(err)))
	}
	return req, true, nil
}

func (h *HttpAPIHandler) predict(c echo.Context) error {
	ctx := c.Request().Context()

	if !h.service.PredictionService.Configured() {
		return c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("Upstox API client not configured"))
	}

	req, ok, err := h.bindPredictionRequest(c)
	if !ok {
		return err
	}

	resp, err := h.service.PredictionService.Predict(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotConfigured):
			return c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("Upstox API client not configured"))
		case errors.Is(err, service.ErrNoCandles):
			return c.JSON(http.StatusNotFound, dto.NewErrorResponse("No data found for the given ISIN and date range"))
		default:
			return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Prediction error: "+err.Error()))
		}
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *HttpAPIHandler) historicalCandles(c echo.Context) error {
	ctx := c.Request().Context()

	if !h.service.PredictionService.Configured() {
		return c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("Upstox API client not configured. Set UPSTOX_API_TOKEN in .env"))
	}

	req, ok, err := h.bindPredictionRequest(c)
	if !ok {
		return err
	}

	resp, err := h.service.PredictionService.HistoricalCandles(ctx, req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Error fetching candles: "+err.Error()))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *HttpAPIHandler) predictionHistory(c echo.Context) error {
	var param dto.GetPredictionHistoryParam
	if err := c.Bind(&param); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("invalid query parameters"))
	}
	if err := h.validator.Struct(param); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(validationDetail(err)))
	}

	resp, err := h.service.PredictionService.History(c.Request().Context(), param)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to load prediction history"))
	}
	return c.JSON(http.StatusOK, resp)
}

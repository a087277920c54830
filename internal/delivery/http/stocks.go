package http

import (
	"net/http"

	"algooee/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStocks(base *echo.Group) {
	base.GET("/stocks", h.listStocks)
}

func (h *HttpAPIHandler) listStocks(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.StockListResponse{
		Stocks: h.service.StockRepo.GetAll(c.Request().Context()),
	})
}

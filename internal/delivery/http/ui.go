package http

import (
	"net/http"

	"algooee/web"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupUI() {
	h.echo.Renderer = web.NewRenderer()
	h.echo.StaticFS("/static", web.Static())
	h.echo.GET("/", h.index)
	h.echo.GET("/ui", h.index)
}

func (h *HttpAPIHandler) index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"Title":  "Algooee",
		"Stocks": h.service.StockRepo.GetAll(c.Request().Context()),
	})
}

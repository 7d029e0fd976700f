package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /healthz
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

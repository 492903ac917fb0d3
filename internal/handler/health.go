package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers liveness probes with a plain "ok".  It takes no
// dependencies so it stays up even when the database is not.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

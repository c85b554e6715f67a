package handlers

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
)

// userFacingFailure is the single message shown for any upstream or parsing
// failure; detail is logged, never returned.
const userFacingFailure = "Gagal mendapatkan analisis. Silakan coba lagi."

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

func upstreamFailure(c echo.Context, status int) error {
	return c.JSON(status, map[string]string{"error": userFacingFailure})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

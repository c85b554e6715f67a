package server

import (
	"github.com/labstack/echo/v4"

	"github.com/faizpoerwita/cuan-check/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	insightHandler *handlers.InsightHandler,
	metricsHandler *handlers.MetricsHandler,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	api.POST("/metrics", metricsHandler.Metrics)
	api.POST("/insights", insightHandler.Insights, aiRateLimiter)
}

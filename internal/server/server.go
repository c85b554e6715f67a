package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/faizpoerwita/cuan-check/internal/ai"
	"github.com/faizpoerwita/cuan-check/internal/config"
	"github.com/faizpoerwita/cuan-check/internal/handlers"
	"github.com/faizpoerwita/cuan-check/internal/insight"
	"github.com/faizpoerwita/cuan-check/internal/repository"
)

// New assembles the Echo server with its routes and dependencies. The db pool
// is optional; without it analysis exchanges are simply not recorded.
func New(cfg config.Config, logger *slog.Logger, db *pgxpool.Pool) (*echo.Echo, error) {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	aiClient := ai.NewGroqClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model, cfg.AI.Timeout, cfg.AI.MaxOutputTokens)

	normalizer := insight.NewNormalizer()
	if cfg.Insight.Attribution != "" {
		normalizer.Attribution = cfg.Insight.Attribution
	}

	cache, err := insight.NewCache(cfg.AI.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("init insight cache: %w", err)
	}

	var recorder repository.RequestRecorder = repository.NopRecorder{}
	if db != nil {
		recorder = repository.NewInsightLogRepository(db)
	}

	insightService := insight.NewService(aiClient, normalizer, cache)
	insightHandler := handlers.NewInsightHandler(insightService, recorder, "groq", cfg.AI.Model)
	metricsHandler := handlers.NewMetricsHandler()

	registerRoutes(e, insightHandler, metricsHandler, aiRateLimiter(cfg.AI))

	return e, nil
}

// NewHTTPServer wraps the handler in a net/http server with timeouts.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func aiRateLimiter(cfg config.AIConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}

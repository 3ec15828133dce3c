package router

import (
	"fmt"
	"net/http"
	"time"

	"remindme/internal/domain/timeofday"
	"remindme/internal/interfaces/api/handler"
	"remindme/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the dependencies for the router.
type Config struct {
	LineHandler *handler.LineHandler // nil unless LINE is the selected transport
	Resolver    *timeofday.Resolver
	Logger      logger.Logger
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status    string `json:"status"`
	Timezone  string `json:"timezone"`
	Now       string `json:"now"`
	TimeOfDay string `json:"time_of_day"` // Minute reminders are currently matched against
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Line-Signature"},
		MaxAge:       300,
	}))

	// Routes
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Reminder bot is running.")
	})
	e.GET("/healthz", func(c echo.Context) error {
		now := cfg.Resolver.Instant()
		return c.JSON(http.StatusOK, HealthResponse{
			Status:    "ok",
			Timezone:  cfg.Resolver.Location().String(),
			Now:       now.Format(time.RFC3339),
			TimeOfDay: cfg.Resolver.NowAsTimeOfDay(),
		})
	})

	// LINE Webhook Endpoint
	// Note: LINE Platform requires POST for webhook
	if cfg.LineHandler != nil {
		e.POST("/callback", cfg.LineHandler.HandleWebhook)
	}

	cfg.Logger.Info("Router initialized with routes.")
	return e
}

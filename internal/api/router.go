package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/insighthq/customer-intelligence/docs"
	"github.com/insighthq/customer-intelligence/internal/api/handler"
	"github.com/insighthq/customer-intelligence/internal/api/middleware"
	"github.com/insighthq/customer-intelligence/internal/core/ports"
	"github.com/insighthq/customer-intelligence/internal/infrastructure/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(service ports.CustomerService, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("customer_intel"))
	e.Use(middleware.RateLimitObserver(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log))

	// --- Handlers ---
	customerHandler := handler.NewCustomerHandler(service)
	healthHandler := handler.NewHealthHandler(service)

	// --- Customer routes ---
	// Static routes are registered alongside :id; Echo matches them first.
	e.GET("/customers", customerHandler.List)
	e.POST("/customers", customerHandler.Create)
	e.GET("/customers/search", customerHandler.Search)
	e.GET("/customers/stats", customerHandler.Stats)
	e.GET("/customers/:id", customerHandler.Get)
	e.PUT("/customers/:id", customerHandler.Update)
	e.DELETE("/customers/:id", customerHandler.Delete)

	// --- Health probes ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mzansi-market/storefront/docs"
	"github.com/mzansi-market/storefront/internal/api/handler"
	"github.com/mzansi-market/storefront/internal/api/middleware"
	"github.com/mzansi-market/storefront/internal/core/derive"
	"github.com/mzansi-market/storefront/internal/core/domain"
	"github.com/mzansi-market/storefront/internal/core/ports"
	"github.com/mzansi-market/storefront/internal/pkg/metrics"
)

// Dependencies are the services and settings the router wires into handlers.
type Dependencies struct {
	Sessions  ports.SessionService
	Inventory ports.InventoryService
	Shipping  derive.ShippingPolicy
	JWTSecret string
	Logger    zerolog.Logger
	// Readiness lists the backends probed by /health/ready, by name.
	Readiness map[string]handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(metrics.Middleware())

	authHandler := handler.NewAuthHandler(deps.Sessions)
	listingHandler := handler.NewListingHandler(deps.Inventory)
	sellerHandler := handler.NewSellerHandler(deps.Inventory)
	cartHandler := handler.NewCartHandler(deps.Inventory, deps.Shipping)

	authenticated := middleware.Auth(deps.JWTSecret)
	sellerOnly := []echo.MiddlewareFunc{
		authenticated,
		middleware.RBAC(domain.RoleSeller),
	}

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", authHandler.Logout, authenticated)
	e.GET("/auth/me", authHandler.Me, authenticated)

	// --- Catalog routes ---
	e.GET("/products", listingHandler.List)
	e.GET("/products/categories", listingHandler.Categories)
	e.GET("/products/:id", listingHandler.Get)
	e.POST("/products", listingHandler.Create, sellerOnly...)
	e.PUT("/products/:id", listingHandler.Update, sellerOnly...)
	e.DELETE("/products/:id", listingHandler.Delete, sellerOnly...)

	e.GET("/sellers/:id/stats", sellerHandler.Stats)
	e.POST("/cart/quote", cartHandler.Quote)
	e.POST("/checkout", cartHandler.Checkout, authenticated)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are backends up?

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= 500 {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

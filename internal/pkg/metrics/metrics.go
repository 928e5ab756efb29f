// Package metrics defines and registers the custom Prometheus metrics of the
// storefront service. Metrics are registered with the default registry at
// package init through promauto.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsTotal counts session transitions.
// Labels:
//   - op: "sign_in", "register", "sign_out" or "restore"
//   - role: "buyer", "seller", or "" for sign-out
var SessionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_total",
		Help:      "Total number of session transitions, by operation and role.",
	},
	[]string{"op", "role"},
)

// SessionErrorsTotal counts failed session operations.
// Label:
//   - reason: "validation", "credentials", "conflict", "storage"
var SessionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_errors_total",
		Help:      "Total number of failed session operations, by reason.",
	},
	[]string{"reason"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ListingMutationsTotal counts successful catalog writes.
// Label:
//   - op: "add", "update", "remove", "seed"
var ListingMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_mutations_total",
		Help:      "Total number of catalog mutations, by operation.",
	},
	[]string{"op"},
)

// CatalogSize tracks the number of listings in the catalog.
var CatalogSize = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_size",
		Help:      "Current number of listings in the catalog.",
	},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// CartQuotesTotal counts computed order summaries.
// Label:
//   - free_shipping: "true" or "false"
var CartQuotesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_quotes_total",
		Help:      "Total number of cart quotes, by whether shipping was free.",
	},
	[]string{"free_shipping"},
)

// OrdersPlacedTotal counts confirmed checkouts.
// Label:
//   - free_shipping: "true" or "false"
var OrdersPlacedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of confirmed orders, by whether shipping was free.",
	},
	[]string{"free_shipping"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// RequestDuration measures handler latency.
// Labels:
//   - method: HTTP method
//   - route: the registered route pattern (e.g. "/products/:id")
//   - code: response status code
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests, by method, route and status code.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "code"},
)

// Middleware records RequestDuration for every request. Handler errors are
// rendered here through c.Error so the observed code is the one sent, then
// passed on so outer middleware still sees the cause. The error handler
// skips responses that are already committed.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			RequestDuration.
				WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(c.Response().Status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

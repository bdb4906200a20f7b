package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rewear_http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rewear_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewear_orders_placed_total",
		Help: "Orders successfully placed.",
	})

	HoldsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewear_cart_holds_created_total",
		Help: "Cart holds created (items added to carts).",
	})

	HoldsExtended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewear_cart_holds_extended_total",
		Help: "Cart hold extensions granted.",
	})

	HoldsReleased = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewear_cart_holds_released_total",
		Help: "Cart holds released by the expiry sweep.",
	})
)

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler { return promhttp.Handler() }

// Middleware records request count and latency per route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		route := c.Route().Path
		if route == "" {
			route = "unknown"
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		HTTPRequests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

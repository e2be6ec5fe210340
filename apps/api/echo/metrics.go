package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "code"})

	markOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "marks_total",
		Help:      "Mark attempts by outcome (marked, duplicate).",
	}, []string{"outcome"})

	summaryOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "summaries_total",
		Help:      "Save-day attempts by outcome (saved, exists).",
	}, []string{"outcome"})

	resets = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "resets_total",
		Help:      "Reset actions by target (attendance, summary).",
	}, []string{"target"})
)

// MetricsHandler serves the prometheus registry; mounted on the debug server.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if err := next(ctx); err != nil {
				ctx.Error(err)
			}
			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			httpRequests.WithLabelValues(
				ctx.Request().Method, route, strconv.Itoa(ctx.Response().Status),
			).Inc()
			return nil
		}
	}
}

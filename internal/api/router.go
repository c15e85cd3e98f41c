package api

import (
	"net/http"
	_ "storefx/docs"
	"storefx/internal/metrics"
	"storefx/internal/rate/handler"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// Admin routes are mounted only when both are set.
	Admin      *handler.AdminHandler
	AdminToken string
}

func NewRouter(rateHandler *handler.Handler, opts Options) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(requestMetrics(opts.Metrics))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/exchange-rate", rateHandler.GetExchangeRate)
		r.Get("/exchange-rate/changes", rateHandler.StreamChanges)
		r.Get("/prices", rateHandler.GetPrices)

		if opts.Admin != nil && opts.AdminToken != "" {
			r.Route("/admin/exchange-rates", func(ar chi.Router) {
				ar.Use(handler.RequireToken(opts.AdminToken))
				ar.Post("/", opts.Admin.ActivateRate)
				ar.Delete("/active", opts.Admin.DeactivateRate)
				ar.Post("/refresh", opts.Admin.RefreshRate)
			})
		}
	})
	return router
}

// requestMetrics records request counts and durations by route pattern, and logs each request.
func requestMetrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)

			if m != nil && path != "/metrics" {
				m.HTTPRequestDuration.WithLabelValues(path, r.Method).Observe(duration.Seconds())
				m.HTTPRequestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(status/100)+"xx").Inc()
			}

			logrus.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     path,
				"status":   status,
				"duration": duration,
			}).Debug("HTTP request")
		})
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeApplied   = "applied"
	OutcomeNoRate    = "no_rate"
	OutcomeFailed    = "failed"
	OutcomeStale     = "stale"
	OutcomeDiscarded = "discarded"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RefreshTotal     *prometheus.CounterVec
	RateChangesTotal prometheus.Counter
	CurrentRate      *prometheus.GaugeVec
}

// New registers all collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		RefreshTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_rate_refresh_total",
				Help: "Exchange rate refreshes by outcome",
			},
			[]string{"outcome"},
		),

		RateChangesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "exchange_rate_changes_total",
				Help: "Detected exchange rate changes",
			},
		),

		CurrentRate: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "exchange_rate_current",
				Help: "Cached exchange rate by kind, zero when no rate is active",
			},
			[]string{"kind"},
		),
	}
}

func (m *Metrics) ObserveRefresh(outcome string) {
	if m == nil {
		return
	}
	m.RefreshTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveChange() {
	if m == nil {
		return
	}
	m.RateChangesTotal.Inc()
}

func (m *Metrics) SetCurrentRate(bcv, blackMarket float64) {
	if m == nil {
		return
	}
	m.CurrentRate.WithLabelValues("bcv").Set(bcv)
	m.CurrentRate.WithLabelValues("black_market").Set(blackMarket)
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "loan_service"

// Payment kinds used as the "kind" label.
const (
	KindRegular = "regular"
	KindManual  = "manual"
)

// Metrics holds every collector the service exports. Build one per registry.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LoanTransitions *prometheus.CounterVec
	Payments        *prometheus.CounterVec
	PaymentCapital  prometheus.Histogram

	reg *prometheus.Registry
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		LoanTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loan_transitions_total",
			Help:      "Loan state transitions by target status.",
		}, []string{"to"}),
		Payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Recorded payments by kind.",
		}, []string{"kind"}),
		PaymentCapital: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "payment_capital_amount",
			Help:      "Capital portion of recorded payments.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}),
		reg: reg,
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal, m.HTTPRequestDuration,
		m.LoanTransitions, m.Payments, m.PaymentCapital,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// The recorders below are nil-safe so usecases can run without metrics.

func (m *Metrics) LoanTransitioned(to string) {
	if m == nil {
		return
	}
	m.LoanTransitions.WithLabelValues(to).Inc()
}

func (m *Metrics) PaymentRecorded(kind string, capital decimal.Decimal) {
	if m == nil {
		return
	}
	m.Payments.WithLabelValues(kind).Inc()
	m.PaymentCapital.Observe(capital.InexactFloat64())
}

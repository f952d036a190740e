package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "barkday"

// Metrics tiene su propio registry (nada en el global) para que los tests
// puedan crear varios sin chocar.
type Metrics struct {
	registry *prometheus.Registry

	calculations *prometheus.CounterVec
	calcDuration prometheus.Histogram
	giftSearches *prometheus.CounterVec
	refReloads   *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
	)

	m := &Metrics{
		registry: reg,
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Cálculos completados, por origen del plan (breed, group, none).",
		}, []string{"plan_source"}),
		calcDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Duración de un cálculo completo.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		giftSearches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gift_searches_total",
			Help:      "Búsquedas de regalos, por resultado (ok, empty, error).",
		}, []string{"result"}),
		refReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reference_reloads_total",
			Help:      "Recargas de reference data, por resultado (ok, partial).",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests HTTP por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de requests HTTP por ruta.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(m.calculations, m.calcDuration, m.giftSearches, m.refReloads, m.httpRequests, m.httpDuration)
	return m
}

// Handler expone /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// CalculationCompleted implementa calculations.Observer.
func (m *Metrics) CalculationCompleted(planSource string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(planSource).Inc()
	m.calcDuration.Observe(elapsed.Seconds())
}

// GiftSearch implementa gifts.Observer.
func (m *Metrics) GiftSearch(picked int, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.giftSearches.WithLabelValues("error").Inc()
	case picked == 0:
		m.giftSearches.WithLabelValues("empty").Inc()
	default:
		m.giftSearches.WithLabelValues("ok").Inc()
	}
}

// ReferenceReloaded cuenta recargas; partial = alguna tabla falló y quedó vacía.
func (m *Metrics) ReferenceReloaded(failedKinds int) {
	if m == nil {
		return
	}
	if failedKinds > 0 {
		m.refReloads.WithLabelValues("partial").Inc()
		return
	}
	m.refReloads.WithLabelValues("ok").Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

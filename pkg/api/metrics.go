package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campus_paths/pkg/campus"
	"campus_paths/pkg/pathservice"
)

// Metrics holds the Prometheus collectors for the view server. A nil
// *Metrics records nothing.
type Metrics struct {
	reg *prometheus.Registry

	serviceRequests *prometheus.CounterVec
	serviceLatency  *prometheus.HistogramVec
	actions         *prometheus.CounterVec
	sessions        prometheus.Gauge
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		serviceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_paths",
			Name:      "service_requests_total",
			Help:      "Route service requests by operation and result.",
		}, []string{"operation", "result"}),
		serviceLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "campus_paths",
			Name:      "service_request_duration_seconds",
			Help:      "Route service request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_paths",
			Name:      "selection_actions_total",
			Help:      "Selection actions by action and outcome.",
		}, []string{"action", "outcome"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "campus_paths",
			Name:      "sessions",
			Help:      "Live selection sessions.",
		}),
	}
	m.reg.MustRegister(m.serviceRequests, m.serviceLatency, m.actions, m.sessions)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) observeService(op string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.serviceRequests.WithLabelValues(op, result).Inc()
	m.serviceLatency.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) action(name, outcome string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(name, outcome).Inc()
}

func (m *Metrics) sessionOpened() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

func (m *Metrics) sessionClosed() {
	if m == nil {
		return
	}
	m.sessions.Dec()
}

// Instrument wraps a route service so every call is counted and timed.
func (m *Metrics) Instrument(svc pathservice.Service) pathservice.Service {
	if m == nil {
		return svc
	}
	return &instrumentedService{next: svc, m: m}
}

type instrumentedService struct {
	next pathservice.Service
	m    *Metrics
}

func (s *instrumentedService) Buildings(ctx context.Context) ([]campus.Building, error) {
	start := time.Now()
	bldgs, err := s.next.Buildings(ctx)
	s.m.observeService("get_names", err, time.Since(start))
	return bldgs, err
}

func (s *instrumentedService) FindPath(ctx context.Context, from, to string) (*campus.Route, error) {
	start := time.Now()
	route, err := s.next.FindPath(ctx, from, to)
	s.m.observeService("find_path", err, time.Since(start))
	return route, err
}

package monitoring

import (
	"context"
	"net/http"
	"sync"

	"salon-wellness-backend/events"
	"salon-wellness-backend/insights"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	OpenStreams = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wellness_event_streams_open",
			Help: "Dashboard event streams currently connected",
		},
	)
)

var (
	ClientsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wellness_clients_created_total",
			Help: "Clients registered since start",
		},
	)

	SessionsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_sessions_recorded_total",
			Help: "Sessions recorded since start, by HRV status",
		},
		[]string{"status"},
	)

	HRVDelta = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wellness_session_hrv_delta_ms",
			Help:    "HRV change per session (after - before)",
			Buckets: []float64{-20, -10, -5, 0, 5, 10, 20, 40},
		},
	)

	IntakeTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_intake_transitions_total",
			Help: "Intake workflow actions by action and outcome",
		},
		[]string{"action", "outcome"},
	)
)

var initOnce sync.Once

// Init registers the collectors with the default registry. Safe to call more
// than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(OpenStreams)
		prometheus.MustRegister(ClientsCreated)
		prometheus.MustRegister(SessionsRecorded)
		prometheus.MustRegister(HRVDelta)
		prometheus.MustRegister(IntakeTransitions)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// EventRecorder counts store changes.
func EventRecorder() events.Publisher {
	return events.PublisherFunc(func(_ context.Context, e events.Event) error {
		switch e.Kind {
		case events.ClientCreated:
			ClientsCreated.Inc()
		case events.SessionRecorded:
			if e.Session == nil {
				return nil
			}
			SessionsRecorded.WithLabelValues(string(insights.Classify(*e.Session))).Inc()
			if delta, ok := insights.HRVDelta(*e.Session); ok {
				HRVDelta.Observe(delta)
			}
		}
		return nil
	})
}

func ObserveIntake(action, outcome string) {
	IntakeTransitions.WithLabelValues(action, outcome).Inc()
}

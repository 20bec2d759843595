package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the record service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Actions applied to a book by kind and action name
	ActionsDispatched *prometheus.CounterVec

	// Update/Delete actions that matched no record
	ActionsNoop *prometheus.CounterVec

	// Actions rejected before reaching the reducer
	ActionsRejected *prometheus.CounterVec

	// Lookups by result: found, not_found
	Lookups *prometheus.CounterVec

	Searches prometheus.Counter

	SessionsActive  prometheus.Gauge
	SessionsCreated *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ActionsDispatched: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recordbook_actions_dispatched_total",
			Help: "Total actions applied to record books",
		}, []string{"kind", "action"}),

		ActionsNoop: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recordbook_actions_noop_total",
			Help: "Total update/delete actions whose target id did not exist",
		}, []string{"kind", "action"}),

		ActionsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recordbook_actions_rejected_total",
			Help: "Total actions rejected by validation",
		}, []string{"kind", "action"}),

		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recordbook_lookups_total",
			Help: "Total record lookups by result",
		}, []string{"result"}),

		Searches: f.NewCounter(prometheus.CounterOpts{
			Name: "recordbook_searches_total",
			Help: "Total content searches",
		}),

		SessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "recordbook_sessions_active",
			Help: "Number of live sessions",
		}),

		SessionsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recordbook_sessions_created_total",
			Help: "Total sessions created by book kind",
		}, []string{"kind"}),
	}
}

// ObserveAction records an applied action and whether it changed anything.
func (m *Metrics) ObserveAction(kind, action string, affected int) {
	if m == nil {
		return
	}
	m.ActionsDispatched.WithLabelValues(kind, action).Inc()
	if affected == 0 {
		m.ActionsNoop.WithLabelValues(kind, action).Inc()
	}
}

// ObserveRejected records an action refused by validation.
func (m *Metrics) ObserveRejected(kind, action string) {
	if m != nil {
		m.ActionsRejected.WithLabelValues(kind, action).Inc()
	}
}

// ObserveLookup records a lookup outcome.
func (m *Metrics) ObserveLookup(found bool) {
	if m == nil {
		return
	}
	result := "not_found"
	if found {
		result = "found"
	}
	m.Lookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSearch() {
	if m != nil {
		m.Searches.Inc()
	}
}

// SessionOpened records a new session of the given kind.
func (m *Metrics) SessionOpened(kind string) {
	if m == nil {
		return
	}
	m.SessionsCreated.WithLabelValues(kind).Inc()
	m.SessionsActive.Inc()
}

// SessionsClosed records n sessions going away.
func (m *Metrics) SessionsClosed(n int) {
	if m != nil && n > 0 {
		m.SessionsActive.Sub(float64(n))
	}
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// WizardMetrics exposes counters/histograms for the booking wizard.
type WizardMetrics struct {
	sessionsStarted prometheus.Counter
	stepAdvances    *prometheus.CounterVec
	gateBlocked     *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	submitLatency   prometheus.Histogram
}

func NewWizardMetrics(reg prometheus.Registerer) *WizardMetrics {
	m := &WizardMetrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agendadoc",
			Subsystem: "wizard",
			Name:      "sessions_started_total",
			Help:      "Total booking wizard sessions created",
		}),
		stepAdvances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agendadoc",
			Subsystem: "wizard",
			Name:      "step_advances_total",
			Help:      "Total forward navigations, by step advanced from",
		}, []string{"from_step"}),
		gateBlocked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agendadoc",
			Subsystem: "wizard",
			Name:      "gate_blocked_total",
			Help:      "Total forward navigations rejected by a step gate",
		}, []string{"step"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agendadoc",
			Subsystem: "wizard",
			Name:      "submissions_total",
			Help:      "Total appointment submissions, by outcome",
		}, []string{"outcome"}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agendadoc",
			Subsystem: "wizard",
			Name:      "submit_latency_seconds",
			Help:      "Latency of appointment creation calls",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sessionsStarted, m.stepAdvances, m.gateBlocked, m.submissions, m.submitLatency)
	return m
}

func (m *WizardMetrics) ObserveSessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

func (m *WizardMetrics) ObserveAdvance(fromStep string) {
	if m == nil {
		return
	}
	m.stepAdvances.WithLabelValues(fromStep).Inc()
}

func (m *WizardMetrics) ObserveGateBlocked(step string) {
	if m == nil {
		return
	}
	m.gateBlocked.WithLabelValues(step).Inc()
}

func (m *WizardMetrics) ObserveSubmission(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
	m.submitLatency.Observe(seconds)
}

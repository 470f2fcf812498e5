package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for form submission runs.
type Metrics struct {
	// Step executions by step and outcome ("ok", "failed")
	StepDuration *prometheus.HistogramVec

	// Compensations by step and outcome ("ok", "failed")
	Compensations *prometheus.CounterVec

	// Submission runs by form and terminal status
	Runs *prometheus.CounterVec

	// Overall run latency
	RunDuration prometheus.Histogram

	AccountsCreated *prometheus.CounterVec
}

// New registers the form builder metrics with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		StepDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "formbuilder_step_duration_seconds",
			Help:    "Duration of process step execution by step and outcome",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"step", "outcome"}),

		Compensations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "formbuilder_compensations_total",
			Help: "Total rollback invocations by step and outcome",
		}, []string{"step", "outcome"}),

		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "formbuilder_runs_total",
			Help: "Total submission runs by form and status",
		}, []string{"form", "status"}),

		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "formbuilder_run_duration_seconds",
			Help:    "Duration of a full submission run including compensation",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		AccountsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "formbuilder_accounts_created_total",
			Help: "Total accounts created by role",
		}, []string{"role"}),
	}
}

// ObserveStep records the duration and outcome of one step execution.
func (m *Metrics) ObserveStep(step string, ok bool, d time.Duration) {
	if m != nil {
		m.StepDuration.WithLabelValues(step, outcome(ok)).Observe(d.Seconds())
	}
}

// IncrementCompensation records one rollback invocation.
func (m *Metrics) IncrementCompensation(step string, ok bool) {
	if m != nil {
		m.Compensations.WithLabelValues(step, outcome(ok)).Inc()
	}
}

// IncrementRun records a finished run.
func (m *Metrics) IncrementRun(form, status string) {
	if m != nil {
		m.Runs.WithLabelValues(form, status).Inc()
	}
}

// ObserveRun records the total run duration.
func (m *Metrics) ObserveRun(d time.Duration) {
	if m != nil {
		m.RunDuration.Observe(d.Seconds())
	}
}

// IncrementAccountsCreated counts an account created for role.
func (m *Metrics) IncrementAccountsCreated(role string) {
	if m != nil {
		m.AccountsCreated.WithLabelValues(role).Inc()
	}
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

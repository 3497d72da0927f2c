package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the case lifecycle.
type Metrics struct {
	CasesSubmitted     *prometheus.CounterVec
	StatusChanges      *prometheus.CounterVec
	ComplaintsAssigned prometheus.Counter
	OperationDuration  *prometheus.HistogramVec
}

// New creates and registers the case metrics.
func New() *Metrics {
	return &Metrics{
		CasesSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govportal_cases_submitted_total",
			Help: "Cases submitted by family",
		}, []string{"family"}),
		StatusChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govportal_case_status_changes_total",
			Help: "Case status changes by family and target status",
		}, []string{"family", "status"}),
		ComplaintsAssigned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "govportal_complaints_assigned_total",
			Help: "Complaints handed to an officer",
		}),
		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "govportal_case_operation_duration_seconds",
			Help:    "Duration of case service operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"family", "operation"}),
	}
}

func (m *Metrics) IncrementSubmitted(family string) {
	m.CasesSubmitted.WithLabelValues(family).Inc()
}

func (m *Metrics) IncrementStatusChange(family, status string) {
	m.StatusChanges.WithLabelValues(family, status).Inc()
}

func (m *Metrics) IncrementAssigned() {
	m.ComplaintsAssigned.Inc()
}

func (m *Metrics) ObserveOperation(family, operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(family, operation).Observe(time.Since(start).Seconds())
}

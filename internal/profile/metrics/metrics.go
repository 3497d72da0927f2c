package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks profile writes and the schemes they match.
type Metrics struct {
	ProfilesSaved  *prometheus.CounterVec
	SchemesMatched *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		ProfilesSaved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govportal_profiles_saved_total",
			Help: "Profile writes by outcome (created or updated)",
		}, []string{"outcome"}),
		SchemesMatched: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govportal_profile_scheme_matches_total",
			Help: "Eligible schemes found on profile writes",
		}, []string{"scheme"}),
	}
}

// IncrementSaved records a write; created is false for updates.
func (m *Metrics) IncrementSaved(created bool) {
	outcome := "updated"
	if created {
		outcome = "created"
	}
	m.ProfilesSaved.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveSchemes(schemes []string) {
	for _, s := range schemes {
		m.SchemesMatched.WithLabelValues(s).Inc()
	}
}

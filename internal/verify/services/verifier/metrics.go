package verifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

const outcomeSuccess = "success"

// Metrics counts verdicts and provider outcomes.
type Metrics struct {
	verdicts         *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
}

// NewMetrics registers the verifier's counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		verdicts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "email_verdicts_total",
				Help: "Total number of classified addresses by verdict status",
			},
			[]string{"status"},
		),
		providerRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "email_provider_requests_total",
				Help: "Total number of external provider calls by outcome",
			},
			[]string{"provider", "outcome"},
		),
	}
}

func (m *Metrics) observeVerdict(v domain.Verdict) {
	if m == nil {
		return
	}
	m.verdicts.WithLabelValues(v.Status().String()).Inc()
}

// observeProvider records "success" or the error kind of r.
func (m *Metrics) observeProvider(r domain.ProviderResult) {
	if m == nil {
		return
	}
	outcome := outcomeSuccess
	if e, ok := r.(domain.ErrorResult); ok {
		outcome = string(e.Kind)
	}
	m.providerRequests.WithLabelValues(string(r.Provider()), outcome).Inc()
}

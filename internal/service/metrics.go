package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/quicksplit/internal/models"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected" // validation failed, the user is re-prompted
	OutcomeFailed   = "failed"   // the notifier returned an error
)

// Metrics records split activity. A nil *Metrics records nothing.
type Metrics struct {
	splits       *prometheus.CounterVec
	participants prometheus.Histogram
}

// NewMetrics creates the split metrics and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		splits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quicksplit",
			Name:      "splits_total",
			Help:      "Split previews and submissions by strategy and outcome.",
		}, []string{"operation", "strategy", "outcome"}),
		participants: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quicksplit",
			Name:      "split_participants",
			Help:      "Number of participants in submitted splits.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 10, 15, 20},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.splits, m.participants)
	}
	return m
}

func (m *Metrics) record(operation string, strategy models.Strategy, outcome string) {
	if m == nil {
		return
	}
	label := string(strategy)
	if !strategy.Valid() {
		label = "unknown"
	}
	m.splits.WithLabelValues(operation, label, outcome).Inc()
}

func (m *Metrics) observeParticipants(n int) {
	if m == nil {
		return
	}
	m.participants.Observe(float64(n))
}

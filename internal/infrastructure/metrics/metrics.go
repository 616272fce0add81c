package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ledger's Prometheus metrics. It implements
// usecase.MetricsRecorder.
type Metrics struct {
	WalletsCreated  prometheus.Counter
	MutationsTotal  *prometheus.CounterVec
	MutationRetries prometheus.Counter
}

// New creates and registers all ledger metrics against reg. Pass
// prometheus.DefaultRegisterer in production.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		WalletsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletd_wallets_created_total",
			Help: "Total number of wallets created",
		}),
		MutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "walletd_mutations_total",
			Help: "Total number of balance mutations by type and outcome",
		}, []string{"type", "status"}),
		MutationRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletd_mutation_retries_total",
			Help: "Total number of mutation attempts retried after a version conflict",
		}),
	}
}

// WalletCreated records a successful wallet creation.
func (m *Metrics) WalletCreated() {
	m.WalletsCreated.Inc()
}

// MutationApplied records a committed mutation.
func (m *Metrics) MutationApplied(txType string) {
	m.MutationsTotal.WithLabelValues(txType, "applied").Inc()
}

// MutationFailed records a failed mutation with its outcome bucket.
func (m *Metrics) MutationFailed(txType, status string) {
	m.MutationsTotal.WithLabelValues(txType, status).Inc()
}

// MutationRetried records one retry of the read-validate-write sequence.
func (m *Metrics) MutationRetried() {
	m.MutationRetries.Inc()
}

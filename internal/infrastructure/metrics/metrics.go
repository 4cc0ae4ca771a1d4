package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/fundledger/internal/domain"
)

// Metrics holds all Prometheus business metrics. It implements usecase.Metrics.
type Metrics struct {
	// Fund metrics
	FundsCreated prometheus.Counter

	// Ledger metrics
	InvestmentsRecorded *prometheus.CounterVec
	InvestmentAmount    *prometheus.HistogramVec
	SwapsRecorded       prometheus.Counter
	WriteErrors         *prometheus.CounterVec

	// Statistics metrics
	StatisticsComputations *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter

	// Outbox metrics
	OutboxPublished prometheus.Counter
	OutboxErrors    prometheus.Counter
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FundsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_funds_created_total",
			Help: "Total number of funds created",
		}),

		InvestmentsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundledger_investments_recorded_total",
				Help: "Total number of ledger records by type",
			},
			[]string{"type"},
		),
		InvestmentAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fundledger_investment_amount",
				Help:    "Recorded investment amounts in denomination units",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		SwapsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_swaps_recorded_total",
			Help: "Total number of vault swaps recorded",
		}),
		WriteErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundledger_write_errors_total",
				Help: "Total failed ledger writes by operation and reason",
			},
			[]string{"operation", "reason"},
		),

		StatisticsComputations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundledger_statistics_computations_total",
				Help: "Fund statistics reads by source",
			},
			[]string{"source"},
		),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),

		OutboxPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_outbox_published_total",
			Help: "Total outbox events published",
		}),
		OutboxErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_outbox_errors_total",
			Help: "Total outbox publish failures",
		}),
	}
}

func (m *Metrics) FundCreated() {
	m.FundsCreated.Inc()
}

func (m *Metrics) InvestmentRecorded(t domain.InvestmentType, amount float64) {
	m.InvestmentsRecorded.WithLabelValues(string(t)).Inc()
	m.InvestmentAmount.WithLabelValues(string(t)).Observe(amount)
}

func (m *Metrics) SwapRecorded() {
	m.SwapsRecorded.Inc()
}

func (m *Metrics) StatisticsComputed(cached bool) {
	source := "ledger"
	if cached {
		source = "cache"
	}
	m.StatisticsComputations.WithLabelValues(source).Inc()
}

func (m *Metrics) WriteFailed(operation, reason string) {
	m.WriteErrors.WithLabelValues(operation, reason).Inc()
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/fundledger/internal/domain"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.FundsCreated == nil || m.InvestmentsRecorded == nil || m.WriteErrors == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.FundCreated()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestBusinessEvents(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.InvestmentRecorded(domain.InvestmentDeposit, 100)
	m.InvestmentRecorded(domain.InvestmentDeposit, 5)
	m.InvestmentRecorded(domain.InvestmentRedeem, 1)
	m.StatisticsComputed(true)
	m.StatisticsComputed(false)
	m.StatisticsComputed(false)
	m.WriteFailed("record_investment", "not_found")
	m.SwapRecorded()

	if got := testutil.ToFloat64(m.InvestmentsRecorded.WithLabelValues("deposit")); got != 2 {
		t.Fatalf("expected 2 deposits, got %v", got)
	}
	if got := testutil.ToFloat64(m.StatisticsComputations.WithLabelValues("ledger")); got != 2 {
		t.Fatalf("expected 2 ledger computations, got %v", got)
	}
	if got := testutil.ToFloat64(m.WriteErrors.WithLabelValues("record_investment", "not_found")); got != 1 {
		t.Fatalf("expected 1 write error, got %v", got)
	}
	if got := testutil.ToFloat64(m.SwapsRecorded); got != 1 {
		t.Fatalf("expected 1 swap, got %v", got)
	}
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}

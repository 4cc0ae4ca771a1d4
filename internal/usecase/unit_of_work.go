package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/iho/fundledger/internal/domain"
)

// unitOfWork runs a write as Begin → fn → Commit. When a retrier is configured the
// whole unit is re-run, never a single statement.
type unitOfWork struct {
	txManager TransactionManager
	retrier   Retrier
}

func (w unitOfWork) run(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	op := func() error {
		tx, err := w.txManager.Begin(txCtx)
		if err != nil {
			return storageErr(err)
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := fn(txCtx, tx); err != nil {
			return err
		}

		if err := tx.Commit(txCtx); err != nil {
			return storageErr(err)
		}

		return nil
	}

	if w.retrier == nil {
		return op()
	}

	return w.retrier.Retry(txCtx, op)
}

// storageErr classifies a repository failure. Domain errors pass through untouched.
func storageErr(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrStorage) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrDuplicateTxHash) {
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrStorage, err)
}

// noopMetrics is used when no metrics sink is configured.
type noopMetrics struct{}

func (noopMetrics) FundCreated()                                      {}
func (noopMetrics) InvestmentRecorded(domain.InvestmentType, float64) {}
func (noopMetrics) SwapRecorded()                                     {}
func (noopMetrics) StatisticsComputed(bool)                           {}
func (noopMetrics) WriteFailed(string, string)                        {}

func metricsOrNoop(m Metrics) Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}

// failureReason labels a write error for metrics.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrDuplicateTxHash):
		return "duplicate"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "storage"
	}
}

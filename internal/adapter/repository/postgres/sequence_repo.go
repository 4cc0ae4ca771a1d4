package postgres

import (
	"context"
	"fmt"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// SequenceRepository implements usecase.SequenceRepository on the
// ledger_sequences table. The row lock taken by the increment serializes
// concurrent writers until commit.
type SequenceRepository struct{}

// NewSequenceRepository creates a new SequenceRepository.
func NewSequenceRepository() *SequenceRepository {
	return &SequenceRepository{}
}

// Next increments and returns the named counter.
func (r *SequenceRepository) Next(ctx context.Context, tx usecase.Transaction, name string) (int64, error) {
	value, err := txQueries(tx).NextSequenceValue(ctx, name)
	if err != nil {
		if isNoRows(err) {
			return 0, fmt.Errorf("%w: unknown sequence %q", domain.ErrStorage, name)
		}
		return 0, err
	}

	return value, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/postgres/generated"
	"github.com/iho/fundledger/internal/usecase"
)

// SwapRepository implements usecase.SwapRepository.
type SwapRepository struct {
	queries *generated.Queries
}

// NewSwapRepository creates a new SwapRepository.
func NewSwapRepository(db generated.DBTX) *SwapRepository {
	return &SwapRepository{queries: generated.New(db)}
}

// Create appends a swap record inside tx.
func (r *SwapRepository) Create(ctx context.Context, tx usecase.Transaction, swap *domain.Swap) error {
	id, ok := parseID(swap.ID)
	if !ok {
		return fmt.Errorf("%w: swap id %q is not numeric", domain.ErrValidation, swap.ID)
	}
	fundID, ok := parseID(swap.FundID)
	if !ok {
		return domain.ErrFundNotFound
	}

	return txQueries(tx).CreateSwap(ctx, generated.CreateSwapParams{
		ID:         id,
		FundID:     fundID,
		VaultProxy: swap.VaultProxy,
		FromToken:  swap.FromToken,
		ToToken:    swap.ToToken,
		FromAmount: decimalToNumeric(swap.FromAmount),
		ToAmount:   decimalToNumeric(swap.ToAmount),
		TxHash:     swap.TxHash,
		Initiator:  swap.Initiator,
		RecordedAt: timeToPgTimestamptz(swap.Timestamp),
		Status:     string(swap.Status),
	})
}

// ListByFund returns the fund's swaps in insertion order.
func (r *SwapRepository) ListByFund(ctx context.Context, fundID string) ([]*domain.Swap, error) {
	key, ok := parseID(fundID)
	if !ok {
		return []*domain.Swap{}, nil
	}

	rows, err := r.queries.ListSwapsByFund(ctx, key)
	if err != nil {
		return nil, err
	}

	return rowsToSwaps(rows), nil
}

// List returns all swaps in insertion order.
func (r *SwapRepository) List(ctx context.Context) ([]*domain.Swap, error) {
	rows, err := r.queries.ListSwaps(ctx)
	if err != nil {
		return nil, err
	}

	return rowsToSwaps(rows), nil
}

func rowsToSwaps(rows []generated.Swap) []*domain.Swap {
	swaps := make([]*domain.Swap, 0, len(rows))
	for _, row := range rows {
		swaps = append(swaps, rowToSwap(row))
	}
	return swaps
}

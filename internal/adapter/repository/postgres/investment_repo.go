package postgres

import (
	"context"
	"fmt"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/postgres/generated"
	"github.com/iho/fundledger/internal/usecase"
)

// InvestmentRepository implements usecase.InvestmentRepository.
type InvestmentRepository struct {
	queries *generated.Queries
}

// NewInvestmentRepository creates a new InvestmentRepository.
func NewInvestmentRepository(db generated.DBTX) *InvestmentRepository {
	return &InvestmentRepository{queries: generated.New(db)}
}

// Create appends an investment record inside tx.
func (r *InvestmentRepository) Create(ctx context.Context, tx usecase.Transaction, inv *domain.Investment) error {
	id, ok := parseID(inv.ID)
	if !ok {
		return fmt.Errorf("%w: investment id %q is not numeric", domain.ErrValidation, inv.ID)
	}
	fundID, ok := parseID(inv.FundID)
	if !ok {
		return domain.ErrFundNotFound
	}

	return txQueries(tx).CreateInvestment(ctx, generated.CreateInvestmentParams{
		ID:              id,
		FundID:          fundID,
		FundName:        inv.FundName,
		FundSymbol:      inv.FundSymbol,
		InvestorAddress: inv.InvestorAddress,
		Type:            string(inv.Type),
		Amount:          decimalToNumeric(inv.Amount),
		Shares:          decimalToNumeric(inv.Shares),
		SharePrice:      decimalToNumeric(inv.SharePrice),
		TxHash:          inv.TxHash,
		RecordedAt:      timeToPgTimestamptz(inv.Timestamp),
		Status:          string(inv.Status),
	})
}

// ExistsByTxHash reports whether a record with txHash is already in the ledger.
func (r *InvestmentRepository) ExistsByTxHash(ctx context.Context, tx usecase.Transaction, txHash string) (bool, error) {
	return txQueries(tx).InvestmentTxHashExists(ctx, txHash)
}

// ListByFund returns the fund's records in insertion order.
func (r *InvestmentRepository) ListByFund(ctx context.Context, fundID string) ([]*domain.Investment, error) {
	key, ok := parseID(fundID)
	if !ok {
		return []*domain.Investment{}, nil
	}

	rows, err := r.queries.ListInvestmentsByFund(ctx, key)
	if err != nil {
		return nil, err
	}

	return rowsToInvestments(rows), nil
}

// List returns the whole ledger in insertion order.
func (r *InvestmentRepository) List(ctx context.Context) ([]*domain.Investment, error) {
	rows, err := r.queries.ListInvestments(ctx)
	if err != nil {
		return nil, err
	}

	return rowsToInvestments(rows), nil
}

func rowsToInvestments(rows []generated.Investment) []*domain.Investment {
	investments := make([]*domain.Investment, 0, len(rows))
	for _, row := range rows {
		investments = append(investments, rowToInvestment(row))
	}
	return investments
}

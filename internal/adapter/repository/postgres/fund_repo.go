package postgres

import (
	"context"
	"fmt"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/postgres/generated"
	"github.com/iho/fundledger/internal/usecase"
)

// FundRepository implements usecase.FundRepository.
type FundRepository struct {
	queries *generated.Queries
}

// NewFundRepository creates a new FundRepository.
func NewFundRepository(db generated.DBTX) *FundRepository {
	return &FundRepository{queries: generated.New(db)}
}

// Create inserts a fund inside tx.
func (r *FundRepository) Create(ctx context.Context, tx usecase.Transaction, fund *domain.Fund) error {
	id, ok := parseID(fund.ID)
	if !ok {
		return fmt.Errorf("%w: fund id %q is not numeric", domain.ErrValidation, fund.ID)
	}

	return txQueries(tx).CreateFund(ctx, generated.CreateFundParams{
		ID:                   id,
		FundName:             fund.FundName,
		FundSymbol:           fund.FundSymbol,
		VaultProxy:           fund.VaultProxy,
		ComptrollerProxy:     fund.ComptrollerProxy,
		DenominationAsset:    fund.DenominationAsset,
		Creator:              fund.Creator,
		TxHash:               fund.TxHash,
		EntranceFeePercent:   decimalToNumeric(fund.EntranceFeePercent),
		EntranceFeeRecipient: fund.EntranceFeeRecipient,
		Status:               string(fund.Status),
		CreatedAt:            timeToPgTimestamptz(fund.CreatedAt),
		UpdatedAt:            timeToPgTimestamptz(fund.UpdatedAt),
	})
}

// Update persists the mutable fund fields (status).
func (r *FundRepository) Update(ctx context.Context, tx usecase.Transaction, fund *domain.Fund) error {
	id, ok := parseID(fund.ID)
	if !ok {
		return domain.ErrFundNotFound
	}

	n, err := txQueries(tx).UpdateFundStatus(ctx, generated.UpdateFundStatusParams{
		ID:        id,
		Status:    string(fund.Status),
		UpdatedAt: timeToPgTimestamptz(fund.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrFundNotFound
	}

	return nil
}

// GetByIDTx retrieves a fund with a FOR UPDATE lock.
func (r *FundRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Fund, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, domain.ErrFundNotFound
	}

	row, err := txQueries(tx).GetFundByIDForUpdate(ctx, key)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrFundNotFound
		}
		return nil, err
	}

	return rowToFund(row), nil
}

// GetByID retrieves a fund by ID.
func (r *FundRepository) GetByID(ctx context.Context, id string) (*domain.Fund, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, domain.ErrFundNotFound
	}

	row, err := r.queries.GetFundByID(ctx, key)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrFundNotFound
		}
		return nil, err
	}

	return rowToFund(row), nil
}

// List returns every fund in id order.
func (r *FundRepository) List(ctx context.Context) ([]*domain.Fund, error) {
	rows, err := r.queries.ListFunds(ctx)
	if err != nil {
		return nil, err
	}

	funds := make([]*domain.Fund, 0, len(rows))
	for _, row := range rows {
		funds = append(funds, rowToFund(row))
	}

	return funds, nil
}

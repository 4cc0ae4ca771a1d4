package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// FundRepository implements usecase.FundRepository.
type FundRepository struct {
	db *gorm.DB
}

func (r *FundRepository) Create(ctx context.Context, tx usecase.Transaction, fund *domain.Fund) error {
	id, ok := parseID(fund.ID)
	if !ok {
		return fmt.Errorf("%w: fund id %q is not numeric", domain.ErrValidation, fund.ID)
	}
	m := fundToModel(id, fund)
	return txDB(ctx, tx).Create(&m).Error
}

func (r *FundRepository) Update(ctx context.Context, tx usecase.Transaction, fund *domain.Fund) error {
	id, ok := parseID(fund.ID)
	if !ok {
		return domain.ErrFundNotFound
	}

	res := txDB(ctx, tx).Model(&fundModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(fund.Status),
			"updated_at": fund.UpdatedAt.UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrFundNotFound
	}
	return nil
}

func (r *FundRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Fund, error) {
	return findFund(txDB(ctx, tx), id)
}

func (r *FundRepository) GetByID(ctx context.Context, id string) (*domain.Fund, error) {
	return findFund(r.db.WithContext(ctx), id)
}

func (r *FundRepository) List(ctx context.Context) ([]*domain.Fund, error) {
	var rows []fundModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	funds := make([]*domain.Fund, 0, len(rows))
	for _, m := range rows {
		funds = append(funds, m.toDomain())
	}
	return funds, nil
}

func findFund(db *gorm.DB, id string) (*domain.Fund, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, domain.ErrFundNotFound
	}

	var m fundModel
	if err := db.First(&m, "id = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFundNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

// InvestmentRepository implements usecase.InvestmentRepository.
type InvestmentRepository struct {
	db *gorm.DB
}

func (r *InvestmentRepository) Create(ctx context.Context, tx usecase.Transaction, inv *domain.Investment) error {
	id, ok := parseID(inv.ID)
	if !ok {
		return fmt.Errorf("%w: investment id %q is not numeric", domain.ErrValidation, inv.ID)
	}
	fundID, ok := parseID(inv.FundID)
	if !ok {
		return domain.ErrFundNotFound
	}

	return txDB(ctx, tx).Create(&investmentModel{
		ID:              id,
		FundID:          fundID,
		FundName:        inv.FundName,
		FundSymbol:      inv.FundSymbol,
		InvestorAddress: inv.InvestorAddress,
		Type:            string(inv.Type),
		Amount:          scaledDecimal{inv.Amount},
		Shares:          scaledDecimal{inv.Shares},
		SharePrice:      scaledDecimal{inv.SharePrice},
		TxHash:          inv.TxHash,
		RecordedAt:      inv.Timestamp.UTC(),
		Status:          string(inv.Status),
	}).Error
}

func (r *InvestmentRepository) ExistsByTxHash(ctx context.Context, tx usecase.Transaction, txHash string) (bool, error) {
	var n int64
	err := txDB(ctx, tx).Model(&investmentModel{}).Where("tx_hash = ?", txHash).Count(&n).Error
	return n > 0, err
}

func (r *InvestmentRepository) ListByFund(ctx context.Context, fundID string) ([]*domain.Investment, error) {
	key, ok := parseID(fundID)
	if !ok {
		return []*domain.Investment{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("fund_id = ?", key))
}

func (r *InvestmentRepository) List(ctx context.Context) ([]*domain.Investment, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *InvestmentRepository) find(q *gorm.DB) ([]*domain.Investment, error) {
	var rows []investmentModel
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*domain.Investment, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

// SwapRepository implements usecase.SwapRepository.
type SwapRepository struct {
	db *gorm.DB
}

func (r *SwapRepository) Create(ctx context.Context, tx usecase.Transaction, swap *domain.Swap) error {
	id, ok := parseID(swap.ID)
	if !ok {
		return fmt.Errorf("%w: swap id %q is not numeric", domain.ErrValidation, swap.ID)
	}
	fundID, ok := parseID(swap.FundID)
	if !ok {
		return domain.ErrFundNotFound
	}

	return txDB(ctx, tx).Create(&swapModel{
		ID:         id,
		FundID:     fundID,
		VaultProxy: swap.VaultProxy,
		FromToken:  swap.FromToken,
		ToToken:    swap.ToToken,
		FromAmount: scaledDecimal{swap.FromAmount},
		ToAmount:   scaledDecimal{swap.ToAmount},
		TxHash:     swap.TxHash,
		Initiator:  swap.Initiator,
		RecordedAt: swap.Timestamp.UTC(),
		Status:     string(swap.Status),
	}).Error
}

func (r *SwapRepository) ListByFund(ctx context.Context, fundID string) ([]*domain.Swap, error) {
	key, ok := parseID(fundID)
	if !ok {
		return []*domain.Swap{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("fund_id = ?", key))
}

func (r *SwapRepository) List(ctx context.Context) ([]*domain.Swap, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *SwapRepository) find(q *gorm.DB) ([]*domain.Swap, error) {
	var rows []swapModel
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*domain.Swap, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

// SequenceRepository implements usecase.SequenceRepository on ledger_sequences.
type SequenceRepository struct{}

func (r *SequenceRepository) Next(ctx context.Context, tx usecase.Transaction, name string) (int64, error) {
	db := txDB(ctx, tx)

	res := db.Model(&sequenceModel{}).
		Where("name = ?", name).
		Update("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("%w: unknown sequence %q", domain.ErrStorage, name)
	}

	var seq sequenceModel
	if err := db.First(&seq, "name = ?", name).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}

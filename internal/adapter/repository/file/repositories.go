package file

import (
	"context"
	"fmt"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// FundRepository implements usecase.FundRepository.
type FundRepository struct {
	s *Store
}

func (r *FundRepository) Create(ctx context.Context, tx usecase.Transaction, fund *domain.Fund) error {
	work := asTx(tx).work
	if work.findFund(fund.ID) >= 0 {
		return fmt.Errorf("%w: fund id %s already exists", domain.ErrStorage, fund.ID)
	}
	work.Funds = append(work.Funds, fundToRecord(fund))
	return nil
}

func (r *FundRepository) Update(ctx context.Context, tx usecase.Transaction, fund *domain.Fund) error {
	work := asTx(tx).work
	i := work.findFund(fund.ID)
	if i < 0 {
		return domain.ErrFundNotFound
	}
	rec := fundToRecord(fund)
	rec.Extra = work.Funds[i].Extra
	work.Funds[i] = rec
	return nil
}

func (r *FundRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Fund, error) {
	work := asTx(tx).work
	i := work.findFund(id)
	if i < 0 {
		return nil, domain.ErrFundNotFound
	}
	return work.Funds[i].toDomain(), nil
}

func (r *FundRepository) GetByID(ctx context.Context, id string) (*domain.Fund, error) {
	doc := r.s.snapshot()
	i := doc.findFund(id)
	if i < 0 {
		return nil, domain.ErrFundNotFound
	}
	return doc.Funds[i].toDomain(), nil
}

func (r *FundRepository) List(ctx context.Context) ([]*domain.Fund, error) {
	doc := r.s.snapshot()
	funds := make([]*domain.Fund, 0, len(doc.Funds))
	for _, rec := range doc.Funds {
		funds = append(funds, rec.toDomain())
	}
	return funds, nil
}

// InvestmentRepository implements usecase.InvestmentRepository.
type InvestmentRepository struct {
	s *Store
}

func (r *InvestmentRepository) Create(ctx context.Context, tx usecase.Transaction, inv *domain.Investment) error {
	work := asTx(tx).work
	work.Investments = append(work.Investments, investmentToRecord(inv))
	return nil
}

func (r *InvestmentRepository) ExistsByTxHash(ctx context.Context, tx usecase.Transaction, txHash string) (bool, error) {
	for _, rec := range asTx(tx).work.Investments {
		if rec.TxHash == txHash {
			return true, nil
		}
	}
	return false, nil
}

func (r *InvestmentRepository) ListByFund(ctx context.Context, fundID string) ([]*domain.Investment, error) {
	doc := r.s.snapshot()
	out := make([]*domain.Investment, 0)
	for _, rec := range doc.Investments {
		if rec.FundID == fundID {
			out = append(out, rec.toDomain())
		}
	}
	return out, nil
}

func (r *InvestmentRepository) List(ctx context.Context) ([]*domain.Investment, error) {
	doc := r.s.snapshot()
	out := make([]*domain.Investment, 0, len(doc.Investments))
	for _, rec := range doc.Investments {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

// SwapRepository implements usecase.SwapRepository.
type SwapRepository struct {
	s *Store
}

func (r *SwapRepository) Create(ctx context.Context, tx usecase.Transaction, swap *domain.Swap) error {
	work := asTx(tx).work
	work.Swaps = append(work.Swaps, swapToRecord(swap))
	return nil
}

func (r *SwapRepository) ListByFund(ctx context.Context, fundID string) ([]*domain.Swap, error) {
	doc := r.s.snapshot()
	out := make([]*domain.Swap, 0)
	for _, rec := range doc.Swaps {
		if rec.FundID == fundID {
			out = append(out, rec.toDomain())
		}
	}
	return out, nil
}

func (r *SwapRepository) List(ctx context.Context) ([]*domain.Swap, error) {
	doc := r.s.snapshot()
	out := make([]*domain.Swap, 0, len(doc.Swaps))
	for _, rec := range doc.Swaps {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

// SequenceRepository implements usecase.SequenceRepository on the document's
// last*Id counters.
type SequenceRepository struct{}

func (r *SequenceRepository) Next(ctx context.Context, tx usecase.Transaction, name string) (int64, error) {
	work := asTx(tx).work
	switch name {
	case usecase.SequenceFund:
		work.LastFundID++
		return work.LastFundID, nil
	case usecase.SequenceInvestment:
		work.LastInvestmentID++
		return work.LastInvestmentID, nil
	case usecase.SequenceSwap:
		work.LastSwapID++
		return work.LastSwapID, nil
	default:
		return 0, fmt.Errorf("%w: unknown sequence %q", domain.ErrStorage, name)
	}
}

package usecase

import (
	"context"

	"github.com/iho/fundledger/internal/domain"
)

// PortfolioUseCase builds cross-fund views for investors and the platform.
type PortfolioUseCase struct {
	fundRepo       FundRepository
	investmentRepo InvestmentRepository
	stats          *StatisticsUseCase
}

// NewPortfolioUseCase creates a new PortfolioUseCase.
func NewPortfolioUseCase(fundRepo FundRepository, investmentRepo InvestmentRepository, stats *StatisticsUseCase) *PortfolioUseCase {
	return &PortfolioUseCase{
		fundRepo:       fundRepo,
		investmentRepo: investmentRepo,
		stats:          stats,
	}
}

// GetInvestorPortfolio summarises every fund investor has records in, in fund insertion order.
func (uc *PortfolioUseCase) GetInvestorPortfolio(ctx context.Context, investor string) (*domain.PortfolioSummary, error) {
	records, err := uc.investmentRepo.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	held := make(map[string]bool)
	for _, r := range domain.FilterByInvestor(records, investor) {
		held[r.FundID] = true
	}

	funds, err := uc.fundRepo.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	positions := make([]*domain.InvestorSummary, 0, len(held))
	for _, f := range funds {
		if !held[f.ID] {
			continue
		}

		stats, err := uc.stats.GetFundStatistics(ctx, f.ID)
		if err != nil {
			return nil, err
		}

		positions = append(positions, domain.ComputeInvestorSummary(f, investor, records, stats.CurrentSharePrice))
	}

	return domain.BuildPortfolio(investor, positions), nil
}

// GetPlatformOverview folds the whole ledger into platform totals.
func (uc *PortfolioUseCase) GetPlatformOverview(ctx context.Context) (*domain.PlatformOverview, error) {
	funds, err := uc.fundRepo.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	records, err := uc.investmentRepo.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	return domain.BuildOverview(funds, records), nil
}

package domain

import "github.com/shopspring/decimal"

// PortfolioSummary aggregates an investor's positions across funds.
type PortfolioSummary struct {
	InvestorAddress string             `json:"investorAddress"`
	Positions       []*InvestorSummary `json:"positions"`
	TotalValue      decimal.Decimal    `json:"totalValue"`
	TotalInvested   decimal.Decimal    `json:"totalInvested"`
	TotalRedeemed   decimal.Decimal    `json:"totalRedeemed"`
	TotalGains      decimal.Decimal    `json:"totalGains"`
	GainsPercentage decimal.Decimal    `json:"gainsPercentage"`
	TotalFunds      int                `json:"totalFunds"`
	BestPerformer   *InvestorSummary   `json:"bestPerformer,omitempty"`
	WorstPerformer  *InvestorSummary   `json:"worstPerformer,omitempty"`
}

// BuildPortfolio combines per-fund summaries. Nil positions are skipped.
func BuildPortfolio(investor string, positions []*InvestorSummary) *PortfolioSummary {
	p := &PortfolioSummary{
		InvestorAddress: investor,
		Positions:       make([]*InvestorSummary, 0, len(positions)),
	}

	for _, pos := range positions {
		if pos == nil {
			continue
		}

		p.Positions = append(p.Positions, pos)
		p.TotalValue = p.TotalValue.Add(pos.CurrentValue)
		p.TotalInvested = p.TotalInvested.Add(pos.TotalDeposited)
		p.TotalRedeemed = p.TotalRedeemed.Add(pos.TotalRedeemed)

		if p.BestPerformer == nil || pos.ReturnPercentage.GreaterThan(p.BestPerformer.ReturnPercentage) {
			p.BestPerformer = pos
		}
		if p.WorstPerformer == nil || pos.ReturnPercentage.LessThan(p.WorstPerformer.ReturnPercentage) {
			p.WorstPerformer = pos
		}
	}

	p.TotalFunds = len(p.Positions)
	p.TotalGains = p.TotalValue.Add(p.TotalRedeemed).Sub(p.TotalInvested)
	p.GainsPercentage = percentOf(p.TotalGains, p.TotalInvested)

	return p
}

// PlatformOverview summarises every fund on the platform.
type PlatformOverview struct {
	TotalAUM       decimal.Decimal `json:"totalAum"`
	TotalFunds     int             `json:"totalFunds"`
	ActiveFunds    int             `json:"activeFunds"`
	TotalInvestors int             `json:"totalInvestors"`
}

// BuildOverview folds the whole ledger into platform-level figures.
func BuildOverview(funds []*Fund, records []*Investment) *PlatformOverview {
	o := &PlatformOverview{TotalFunds: len(funds)}
	investors := make(map[string]struct{})
	byFund := make(map[string][]*Investment)

	for _, r := range records {
		investors[NormalizeAddress(r.InvestorAddress)] = struct{}{}
		byFund[r.FundID] = append(byFund[r.FundID], r)
	}

	for _, f := range funds {
		if f.Status == FundStatusActive {
			o.ActiveFunds++
		}
		o.TotalAUM = o.TotalAUM.Add(ComputeFundStatistics(f.ID, byFund[f.ID]).NetAssets)
	}

	o.TotalInvestors = len(investors)

	return o
}

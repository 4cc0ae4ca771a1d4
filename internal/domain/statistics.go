package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Display precision for derived figures. Computation always uses full precision.
const (
	AmountPlaces = 2
	PricePlaces  = 4
	SharePlaces  = 6
)

var (
	hundred = decimal.NewFromInt(100)
	// ParSharePrice is reported when a fund has no outstanding shares.
	ParSharePrice = decimal.NewFromInt(1)
)

// FundStatistics is the fold of every ledger record of one fund.
type FundStatistics struct {
	FundID               string          `json:"fundId"`
	TotalDeposits        decimal.Decimal `json:"totalDeposits"`
	TotalRedemptions     decimal.Decimal `json:"totalRedemptions"`
	TotalSharesDeposited decimal.Decimal `json:"totalSharesDeposited"`
	TotalSharesRedeemed  decimal.Decimal `json:"totalSharesRedeemed"`
	NetAssets            decimal.Decimal `json:"netAssets"`
	TotalShares          decimal.Decimal `json:"totalShares"`
	CurrentSharePrice    decimal.Decimal `json:"currentSharePrice"`
	TotalInvestors       int             `json:"totalInvestors"`
}

// ComputeFundStatistics folds the records of fundID. Records of other funds are ignored.
func ComputeFundStatistics(fundID string, records []*Investment) FundStatistics {
	stats := FundStatistics{
		FundID:            fundID,
		CurrentSharePrice: ParSharePrice,
	}
	investors := make(map[string]struct{})

	for _, r := range records {
		if r.FundID != fundID {
			continue
		}

		investors[NormalizeAddress(r.InvestorAddress)] = struct{}{}

		switch r.Type {
		case InvestmentDeposit:
			stats.TotalDeposits = stats.TotalDeposits.Add(r.Amount)
			stats.TotalSharesDeposited = stats.TotalSharesDeposited.Add(r.Shares)
		case InvestmentRedeem:
			stats.TotalRedemptions = stats.TotalRedemptions.Add(r.Amount)
			stats.TotalSharesRedeemed = stats.TotalSharesRedeemed.Add(r.Shares)
		}
	}

	stats.NetAssets = stats.TotalDeposits.Sub(stats.TotalRedemptions)
	stats.TotalShares = stats.TotalSharesDeposited.Sub(stats.TotalSharesRedeemed)
	if stats.TotalShares.IsPositive() {
		stats.CurrentSharePrice = stats.NetAssets.Div(stats.TotalShares)
	}
	stats.TotalInvestors = len(investors)

	return stats
}

// InvestorSummary is one investor's position in one fund.
type InvestorSummary struct {
	FundID          string          `json:"fundId"`
	FundName        string          `json:"fundName"`
	FundSymbol      string          `json:"fundSymbol"`
	InvestorAddress string          `json:"investorAddress"`
	TotalDeposited  decimal.Decimal `json:"totalDeposited"`
	TotalRedeemed   decimal.Decimal `json:"totalRedeemed"`
	// NetShares is deposits minus redemptions and can be negative after over-redemption.
	NetShares decimal.Decimal `json:"netShares"`
	// CurrentShares and CurrentValue are floored at zero for display.
	CurrentShares       decimal.Decimal `json:"currentShares"`
	CurrentValue        decimal.Decimal `json:"currentValue"`
	SharePrice          decimal.Decimal `json:"sharePrice"`
	TotalReturn         decimal.Decimal `json:"totalReturn"`
	ReturnPercentage    decimal.Decimal `json:"returnPercentage"`
	FirstInvestmentDate time.Time       `json:"firstInvestmentDate"`
	LastTransactionDate time.Time       `json:"lastTransactionDate"`
}

// ComputeInvestorSummary folds investor's records in fund, valued at the fund-wide
// sharePrice. It returns nil when the investor has no records there.
func ComputeInvestorSummary(fund *Fund, investor string, records []*Investment, sharePrice decimal.Decimal) *InvestorSummary {
	if fund == nil {
		return nil
	}

	var (
		summary *InvestorSummary
		shares  decimal.Decimal
	)

	for _, r := range records {
		if r.FundID != fund.ID || !SameAddress(r.InvestorAddress, investor) {
			continue
		}

		if summary == nil {
			summary = &InvestorSummary{
				FundID:              fund.ID,
				FundName:            fund.FundName,
				FundSymbol:          fund.FundSymbol,
				InvestorAddress:     investor,
				SharePrice:          sharePrice,
				FirstInvestmentDate: r.Timestamp,
				LastTransactionDate: r.Timestamp,
			}
		}

		if r.IsDeposit() {
			summary.TotalDeposited = summary.TotalDeposited.Add(r.Amount)
			shares = shares.Add(r.Shares)
		} else {
			summary.TotalRedeemed = summary.TotalRedeemed.Add(r.Amount)
			shares = shares.Sub(r.Shares)
		}

		if r.Timestamp.Before(summary.FirstInvestmentDate) {
			summary.FirstInvestmentDate = r.Timestamp
		}
		if r.Timestamp.After(summary.LastTransactionDate) {
			summary.LastTransactionDate = r.Timestamp
		}
	}

	if summary == nil {
		return nil
	}

	value := shares.Mul(sharePrice)
	summary.NetShares = shares
	summary.CurrentShares = decimal.Max(decimal.Zero, shares)
	summary.CurrentValue = decimal.Max(decimal.Zero, value)
	summary.TotalReturn = value.Add(summary.TotalRedeemed).Sub(summary.TotalDeposited)
	summary.ReturnPercentage = percentOf(summary.TotalReturn, summary.TotalDeposited)

	return summary
}

// percentOf returns part/whole*100, or zero when whole is not positive.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}

	return part.Div(whole).Mul(hundred)
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
)

// Envelope wraps every successful response. A lookup that finds nothing
// carries "data": null.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func amount(d decimal.Decimal) string { return d.StringFixed(domain.AmountPlaces) }
func price(d decimal.Decimal) string  { return d.StringFixed(domain.PricePlaces) }
func shares(d decimal.Decimal) string { return d.StringFixed(domain.SharePlaces) }

// FundResponse represents a fund in API responses.
type FundResponse struct {
	ID                   string    `json:"id"`
	FundName             string    `json:"fundName"`
	FundSymbol           string    `json:"fundSymbol"`
	VaultProxy           string    `json:"vaultProxy"`
	ComptrollerProxy     string    `json:"comptrollerProxy"`
	DenominationAsset    string    `json:"denominationAsset"`
	Creator              string    `json:"creator"`
	TxHash               string    `json:"txHash"`
	EntranceFeePercent   string    `json:"entranceFeePercent"`
	EntranceFeeRecipient string    `json:"entranceFeeRecipient"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// FundFromDomain converts a domain fund to a response. Nil stays nil.
func FundFromDomain(f *domain.Fund) *FundResponse {
	if f == nil {
		return nil
	}
	return &FundResponse{
		ID:                   f.ID,
		FundName:             f.FundName,
		FundSymbol:           f.FundSymbol,
		VaultProxy:           f.VaultProxy,
		ComptrollerProxy:     f.ComptrollerProxy,
		DenominationAsset:    f.DenominationAsset,
		Creator:              f.Creator,
		TxHash:               f.TxHash,
		EntranceFeePercent:   domain.FormatDecimal(f.EntranceFeePercent),
		EntranceFeeRecipient: f.EntranceFeeRecipient,
		Status:               string(f.Status),
		CreatedAt:            f.CreatedAt,
		UpdatedAt:            f.UpdatedAt,
	}
}

// FundsFromDomain converts domain funds to responses.
func FundsFromDomain(funds []*domain.Fund) []*FundResponse {
	result := make([]*FundResponse, len(funds))
	for i, f := range funds {
		result[i] = FundFromDomain(f)
	}
	return result
}

// InvestmentResponse represents a ledger record. Amounts keep the precision
// they were recorded with.
type InvestmentResponse struct {
	ID              string    `json:"id"`
	FundID          string    `json:"fundId"`
	FundName        string    `json:"fundName"`
	FundSymbol      string    `json:"fundSymbol"`
	InvestorAddress string    `json:"investorAddress"`
	Type            string    `json:"type"`
	Amount          string    `json:"amount"`
	Shares          string    `json:"shares"`
	SharePrice      string    `json:"sharePrice"`
	TxHash          string    `json:"txHash"`
	Timestamp       time.Time `json:"timestamp"`
	Status          string    `json:"status"`
}

// InvestmentFromDomain converts a domain record to a response.
func InvestmentFromDomain(inv *domain.Investment) *InvestmentResponse {
	return &InvestmentResponse{
		ID:              inv.ID,
		FundID:          inv.FundID,
		FundName:        inv.FundName,
		FundSymbol:      inv.FundSymbol,
		InvestorAddress: inv.InvestorAddress,
		Type:            string(inv.Type),
		Amount:          domain.FormatDecimal(inv.Amount),
		Shares:          domain.FormatDecimal(inv.Shares),
		SharePrice:      domain.FormatDecimal(inv.SharePrice),
		TxHash:          inv.TxHash,
		Timestamp:       inv.Timestamp,
		Status:          string(inv.Status),
	}
}

// InvestmentsFromDomain converts domain records to responses.
func InvestmentsFromDomain(records []*domain.Investment) []*InvestmentResponse {
	result := make([]*InvestmentResponse, len(records))
	for i, r := range records {
		result[i] = InvestmentFromDomain(r)
	}
	return result
}

// SwapResponse represents a recorded vault swap.
type SwapResponse struct {
	ID         string    `json:"id"`
	FundID     string    `json:"fundId"`
	VaultProxy string    `json:"vaultProxy"`
	FromToken  string    `json:"fromToken"`
	ToToken    string    `json:"toToken"`
	FromAmount string    `json:"fromAmount"`
	ToAmount   string    `json:"toAmount"`
	TxHash     string    `json:"txHash"`
	Initiator  string    `json:"initiator"`
	Timestamp  time.Time `json:"timestamp"`
	Status     string    `json:"status"`
}

// SwapFromDomain converts a domain swap to a response.
func SwapFromDomain(s *domain.Swap) *SwapResponse {
	return &SwapResponse{
		ID:         s.ID,
		FundID:     s.FundID,
		VaultProxy: s.VaultProxy,
		FromToken:  s.FromToken,
		ToToken:    s.ToToken,
		FromAmount: domain.FormatDecimal(s.FromAmount),
		ToAmount:   domain.FormatDecimal(s.ToAmount),
		TxHash:     s.TxHash,
		Initiator:  s.Initiator,
		Timestamp:  s.Timestamp,
		Status:     string(s.Status),
	}
}

// SwapsFromDomain converts domain swaps to responses.
func SwapsFromDomain(swaps []*domain.Swap) []*SwapResponse {
	result := make([]*SwapResponse, len(swaps))
	for i, s := range swaps {
		result[i] = SwapFromDomain(s)
	}
	return result
}

// FundStatisticsResponse is the display form of domain.FundStatistics.
// TotalAssets repeats NetAssets under the name older clients read.
type FundStatisticsResponse struct {
	FundID               string `json:"fundId"`
	TotalDeposits        string `json:"totalDeposits"`
	TotalRedemptions     string `json:"totalRedemptions"`
	NetAssets            string `json:"netAssets"`
	TotalAssets          string `json:"totalAssets"`
	TotalSharesDeposited string `json:"totalSharesDeposited"`
	TotalSharesRedeemed  string `json:"totalSharesRedeemed"`
	TotalShares          string `json:"totalShares"`
	CurrentSharePrice    string `json:"currentSharePrice"`
	TotalInvestors       int    `json:"totalInvestors"`
}

// FundStatisticsFromDomain formats statistics for display.
func FundStatisticsFromDomain(s domain.FundStatistics) *FundStatisticsResponse {
	return &FundStatisticsResponse{
		FundID:               s.FundID,
		TotalDeposits:        amount(s.TotalDeposits),
		TotalRedemptions:     amount(s.TotalRedemptions),
		NetAssets:            amount(s.NetAssets),
		TotalAssets:          amount(s.NetAssets),
		TotalSharesDeposited: shares(s.TotalSharesDeposited),
		TotalSharesRedeemed:  shares(s.TotalSharesRedeemed),
		TotalShares:          shares(s.TotalShares),
		CurrentSharePrice:    price(s.CurrentSharePrice),
		TotalInvestors:       s.TotalInvestors,
	}
}

// InvestorSummaryResponse is the display form of domain.InvestorSummary.
type InvestorSummaryResponse struct {
	FundID              string    `json:"fundId"`
	FundName            string    `json:"fundName"`
	FundSymbol          string    `json:"fundSymbol"`
	InvestorAddress     string    `json:"investorAddress"`
	TotalDeposited      string    `json:"totalDeposited"`
	TotalRedeemed       string    `json:"totalRedeemed"`
	CurrentShares       string    `json:"currentShares"`
	NetShares           string    `json:"netShares"`
	CurrentValue        string    `json:"currentValue"`
	SharePrice          string    `json:"sharePrice"`
	TotalReturn         string    `json:"totalReturn"`
	ReturnPercentage    string    `json:"returnPercentage"`
	FirstInvestmentDate time.Time `json:"firstInvestmentDate"`
	LastTransactionDate time.Time `json:"lastTransactionDate"`
}

// InvestorSummaryFromDomain formats a summary for display. Nil stays nil.
func InvestorSummaryFromDomain(s *domain.InvestorSummary) *InvestorSummaryResponse {
	if s == nil {
		return nil
	}
	return &InvestorSummaryResponse{
		FundID:              s.FundID,
		FundName:            s.FundName,
		FundSymbol:          s.FundSymbol,
		InvestorAddress:     s.InvestorAddress,
		TotalDeposited:      amount(s.TotalDeposited),
		TotalRedeemed:       amount(s.TotalRedeemed),
		CurrentShares:       shares(s.CurrentShares),
		NetShares:           shares(s.NetShares),
		CurrentValue:        amount(s.CurrentValue),
		SharePrice:          price(s.SharePrice),
		TotalReturn:         amount(s.TotalReturn),
		ReturnPercentage:    amount(s.ReturnPercentage),
		FirstInvestmentDate: s.FirstInvestmentDate,
		LastTransactionDate: s.LastTransactionDate,
	}
}

// PortfolioResponse is the display form of domain.PortfolioSummary.
type PortfolioResponse struct {
	InvestorAddress string                     `json:"investorAddress"`
	Positions       []*InvestorSummaryResponse `json:"positions"`
	TotalValue      string                     `json:"totalValue"`
	TotalInvested   string                     `json:"totalInvested"`
	TotalRedeemed   string                     `json:"totalRedeemed"`
	TotalGains      string                     `json:"totalGains"`
	GainsPercentage string                     `json:"gainsPercentage"`
	TotalFunds      int                        `json:"totalFunds"`
	BestPerformer   *InvestorSummaryResponse   `json:"bestPerformer"`
	WorstPerformer  *InvestorSummaryResponse   `json:"worstPerformer"`
}

// PortfolioFromDomain formats a portfolio for display.
func PortfolioFromDomain(p *domain.PortfolioSummary) *PortfolioResponse {
	positions := make([]*InvestorSummaryResponse, len(p.Positions))
	for i, pos := range p.Positions {
		positions[i] = InvestorSummaryFromDomain(pos)
	}

	return &PortfolioResponse{
		InvestorAddress: p.InvestorAddress,
		Positions:       positions,
		TotalValue:      amount(p.TotalValue),
		TotalInvested:   amount(p.TotalInvested),
		TotalRedeemed:   amount(p.TotalRedeemed),
		TotalGains:      amount(p.TotalGains),
		GainsPercentage: amount(p.GainsPercentage),
		TotalFunds:      p.TotalFunds,
		BestPerformer:   InvestorSummaryFromDomain(p.BestPerformer),
		WorstPerformer:  InvestorSummaryFromDomain(p.WorstPerformer),
	}
}

// OverviewResponse is the display form of domain.PlatformOverview.
type OverviewResponse struct {
	TotalAUM       string `json:"totalAum"`
	TotalFunds     int    `json:"totalFunds"`
	ActiveFunds    int    `json:"activeFunds"`
	TotalInvestors int    `json:"totalInvestors"`
}

// OverviewFromDomain formats the overview for display.
func OverviewFromDomain(o *domain.PlatformOverview) *OverviewResponse {
	return &OverviewResponse{
		TotalAUM:       amount(o.TotalAUM),
		TotalFunds:     o.TotalFunds,
		ActiveFunds:    o.ActiveFunds,
		TotalInvestors: o.TotalInvestors,
	}
}

// BackupResponse reports where a snapshot was uploaded.
type BackupResponse struct {
	Key string `json:"key"`
}

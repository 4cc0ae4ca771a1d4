package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iho/fundledger/internal/usecase"
)

// NumericString accepts either a JSON string or a bare JSON number and keeps
// the literal text, so "1000.5" and 1000.5 decode the same way without a
// float round-trip.
type NumericString string

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumericString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected number or string, got %s", b)
	}
	*n = NumericString(num.String())
	return nil
}

// CreateFundRequest represents a request to register a fund.
type CreateFundRequest struct {
	FundName             string        `json:"fundName"`
	FundSymbol           string        `json:"fundSymbol"`
	VaultProxy           string        `json:"vaultProxy"`
	ComptrollerProxy     string        `json:"comptrollerProxy"`
	DenominationAsset    string        `json:"denominationAsset"`
	Creator              string        `json:"creator"`
	TxHash               string        `json:"txHash"`
	EntranceFeePercent   NumericString `json:"entranceFeePercent"`
	EntranceFeeRecipient string        `json:"entranceFeeRecipient"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateFundRequest) ToUseCaseInput() usecase.CreateFundInput {
	return usecase.CreateFundInput{
		FundName:             r.FundName,
		FundSymbol:           r.FundSymbol,
		VaultProxy:           r.VaultProxy,
		ComptrollerProxy:     r.ComptrollerProxy,
		DenominationAsset:    r.DenominationAsset,
		Creator:              r.Creator,
		TxHash:               r.TxHash,
		EntranceFeePercent:   string(r.EntranceFeePercent),
		EntranceFeeRecipient: r.EntranceFeeRecipient,
	}
}

// UpdateFundStatusRequest represents a fund status change.
type UpdateFundStatusRequest struct {
	Status string `json:"status"`
}

// RecordInvestmentRequest represents a deposit or redeem to append.
type RecordInvestmentRequest struct {
	FundID          NumericString `json:"fundId"`
	InvestorAddress string        `json:"investorAddress"`
	Type            string        `json:"type"`
	Amount          NumericString `json:"amount"`
	Shares          NumericString `json:"shares"`
	SharePrice      NumericString `json:"sharePrice"`
	TxHash          string        `json:"txHash"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordInvestmentRequest) ToUseCaseInput() usecase.RecordInvestmentInput {
	return usecase.RecordInvestmentInput{
		FundID:          string(r.FundID),
		InvestorAddress: r.InvestorAddress,
		Type:            r.Type,
		Amount:          string(r.Amount),
		Shares:          string(r.Shares),
		SharePrice:      string(r.SharePrice),
		TxHash:          r.TxHash,
	}
}

// RecordSwapRequest represents a vault swap to append.
type RecordSwapRequest struct {
	FundID     NumericString `json:"fundId"`
	FromToken  string        `json:"fromToken"`
	ToToken    string        `json:"toToken"`
	FromAmount NumericString `json:"fromAmount"`
	ToAmount   NumericString `json:"toAmount"`
	TxHash     string        `json:"txHash"`
	Initiator  string        `json:"initiator"`
	Status     string        `json:"status"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordSwapRequest) ToUseCaseInput() usecase.RecordSwapInput {
	return usecase.RecordSwapInput{
		FundID:     string(r.FundID),
		FromToken:  r.FromToken,
		ToToken:    r.ToToken,
		FromAmount: string(r.FromAmount),
		ToAmount:   string(r.ToAmount),
		TxHash:     r.TxHash,
		Initiator:  r.Initiator,
		Status:     r.Status,
	}
}

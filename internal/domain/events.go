package domain

import "time"

// Event types
const (
	EventTypeFundCreated        = "fund.created"
	EventTypeFundStatusChanged  = "fund.status_changed"
	EventTypeInvestmentRecorded = "investment.recorded"
	EventTypeSwapRecorded       = "swap.recorded"
)

// Aggregate types
const (
	AggregateTypeFund       = "fund"
	AggregateTypeInvestment = "investment"
	AggregateTypeSwap       = "swap"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// NewFundCreatedEvent describes a newly registered fund.
func NewFundCreatedEvent(id string, f *Fund) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		AggregateID:   f.ID,
		AggregateType: AggregateTypeFund,
		EventType:     EventTypeFundCreated,
		Payload: map[string]any{
			"fund_name":   f.FundName,
			"fund_symbol": f.FundSymbol,
			"vault_proxy": f.VaultProxy,
			"creator":     f.Creator,
		},
		CreatedAt: f.CreatedAt,
	}
}

// NewFundStatusChangedEvent describes a status edit.
func NewFundStatusChangedEvent(id string, f *Fund, previous FundStatus) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		AggregateID:   f.ID,
		AggregateType: AggregateTypeFund,
		EventType:     EventTypeFundStatusChanged,
		Payload: map[string]any{
			"from": string(previous),
			"to":   string(f.Status),
		},
		CreatedAt: f.UpdatedAt,
	}
}

// NewInvestmentRecordedEvent describes a ledger append.
func NewInvestmentRecordedEvent(id string, inv *Investment) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		AggregateID:   inv.ID,
		AggregateType: AggregateTypeInvestment,
		EventType:     EventTypeInvestmentRecorded,
		Payload: map[string]any{
			"fund_id":  inv.FundID,
			"investor": inv.InvestorAddress,
			"type":     string(inv.Type),
			"amount":   FormatDecimal(inv.Amount),
			"shares":   FormatDecimal(inv.Shares),
			"tx_hash":  inv.TxHash,
		},
		CreatedAt: inv.Timestamp,
	}
}

// NewSwapRecordedEvent describes a recorded vault swap.
func NewSwapRecordedEvent(id string, s *Swap) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		AggregateID:   s.ID,
		AggregateType: AggregateTypeSwap,
		EventType:     EventTypeSwapRecorded,
		Payload: map[string]any{
			"fund_id":     s.FundID,
			"from_token":  s.FromToken,
			"to_token":    s.ToToken,
			"from_amount": FormatDecimal(s.FromAmount),
			"to_amount":   FormatDecimal(s.ToAmount),
		},
		CreatedAt: s.Timestamp,
	}
}

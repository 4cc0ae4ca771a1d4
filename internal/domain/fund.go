package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FundStatus is the externally managed lifecycle state of a fund.
type FundStatus string

const (
	FundStatusActive FundStatus = "active"
	FundStatusPaused FundStatus = "paused"
	FundStatusClosed FundStatus = "closed"
)

// ParseFundStatus validates a status string.
func ParseFundStatus(s string) (FundStatus, error) {
	switch FundStatus(strings.ToLower(strings.TrimSpace(s))) {
	case FundStatusActive:
		return FundStatusActive, nil
	case FundStatusPaused:
		return FundStatusPaused, nil
	case FundStatusClosed:
		return FundStatusClosed, nil
	default:
		return "", ErrInvalidStatus
	}
}

var maxEntranceFeePercent = decimal.NewFromInt(100)

// Fund is a named pool backed by an external vault/comptroller pair.
type Fund struct {
	ID                   string
	FundName             string
	FundSymbol           string
	VaultProxy           string
	ComptrollerProxy     string
	DenominationAsset    string
	Creator              string
	TxHash               string
	EntranceFeePercent   decimal.Decimal
	EntranceFeeRecipient string
	Status               FundStatus
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Validate checks the fields required at creation.
func (f *Fund) Validate() error {
	if err := ValidateRequired(
		RequiredField{"fundName", f.FundName},
		RequiredField{"fundSymbol", f.FundSymbol},
		RequiredField{"vaultProxy", f.VaultProxy},
		RequiredField{"comptrollerProxy", f.ComptrollerProxy},
		RequiredField{"creator", f.Creator},
	); err != nil {
		return err
	}

	if f.EntranceFeePercent.IsNegative() || f.EntranceFeePercent.GreaterThan(maxEntranceFeePercent) {
		return ErrInvalidFeeValue
	}

	return nil
}

// MatchesQuery reports whether name or symbol contains query, ignoring case.
func (f *Fund) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(f.FundName), q) ||
		strings.Contains(strings.ToLower(f.FundSymbol), q)
}

// SetStatus changes the status and refreshes UpdatedAt.
func (f *Fund) SetStatus(status FundStatus, now time.Time) {
	f.Status = status
	f.UpdatedAt = now
}

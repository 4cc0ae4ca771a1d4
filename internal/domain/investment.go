package domain

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentType distinguishes share issuance from share burning.
type InvestmentType string

const (
	InvestmentDeposit InvestmentType = "deposit"
	InvestmentRedeem  InvestmentType = "redeem"
)

// ParseInvestmentType accepts exactly "deposit" or "redeem".
func ParseInvestmentType(s string) (InvestmentType, error) {
	switch InvestmentType(s) {
	case InvestmentDeposit:
		return InvestmentDeposit, nil
	case InvestmentRedeem:
		return InvestmentRedeem, nil
	default:
		return "", ErrInvalidInvestmentType
	}
}

// RecordStatus is the settlement state of a ledger record.
type RecordStatus string

const (
	RecordPending   RecordStatus = "pending"
	RecordCompleted RecordStatus = "completed"
	RecordFailed    RecordStatus = "failed"
)

// Investment is an immutable deposit or redeem entry in the ledger.
type Investment struct {
	ID              string
	FundID          string
	FundName        string
	FundSymbol      string
	InvestorAddress string
	Type            InvestmentType
	Amount          decimal.Decimal
	Shares          decimal.Decimal
	SharePrice      decimal.Decimal
	TxHash          string
	Timestamp       time.Time
	Status          RecordStatus
}

// IsDeposit reports whether the record issued shares.
func (i *Investment) IsDeposit() bool {
	return i.Type == InvestmentDeposit
}

// FilterByFund returns the records belonging to fundID.
func FilterByFund(records []*Investment, fundID string) []*Investment {
	out := make([]*Investment, 0, len(records))
	for _, r := range records {
		if r.FundID == fundID {
			out = append(out, r)
		}
	}

	return out
}

// FilterByInvestor returns the records made by investor (case-insensitive).
func FilterByInvestor(records []*Investment, investor string) []*Investment {
	out := make([]*Investment, 0, len(records))
	for _, r := range records {
		if SameAddress(r.InvestorAddress, investor) {
			out = append(out, r)
		}
	}

	return out
}

// SortNewestFirst orders records by timestamp descending, then by id descending.
func SortNewestFirst(records []*Investment) {
	sort.SliceStable(records, func(a, b int) bool {
		return newerThan(records[a].Timestamp, records[a].ID, records[b].Timestamp, records[b].ID)
	})
}

func newerThan(ta time.Time, ida string, tb time.Time, idb string) bool {
	if !ta.Equal(tb) {
		return ta.After(tb)
	}

	return sequenceOf(ida) > sequenceOf(idb)
}

// sequenceOf extracts the numeric sequence from a ledger id; non-numeric ids sort first.
func sequenceOf(id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return -1
	}

	return n
}

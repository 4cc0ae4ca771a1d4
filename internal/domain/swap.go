package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Swap records an asset exchange executed by a fund's vault.
type Swap struct {
	ID         string
	FundID     string
	VaultProxy string
	FromToken  string
	ToToken    string
	FromAmount decimal.Decimal
	ToAmount   decimal.Decimal
	TxHash     string
	Initiator  string
	Timestamp  time.Time
	Status     RecordStatus
}

// ParseRecordStatus accepts a settlement status, defaulting to completed when empty.
func ParseRecordStatus(s string) (RecordStatus, error) {
	switch RecordStatus(s) {
	case "":
		return RecordCompleted, nil
	case RecordPending, RecordCompleted, RecordFailed:
		return RecordStatus(s), nil
	default:
		return "", fmt.Errorf("%w: status must be pending, completed or failed", ErrValidation)
	}
}

// SortSwapsNewestFirst orders swaps by timestamp descending, then by id descending.
func SortSwapsNewestFirst(swaps []*Swap) {
	sort.SliceStable(swaps, func(a, b int) bool {
		return newerThan(swaps[a].Timestamp, swaps[a].ID, swaps[b].Timestamp, swaps[b].ID)
	})
}

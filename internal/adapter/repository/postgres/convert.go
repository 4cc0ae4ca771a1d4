package postgres

import (
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/postgres/generated"
	"github.com/iho/fundledger/internal/usecase"
)

// txQueries binds generated queries to the pgx transaction behind tx.
func txQueries(tx usecase.Transaction) *generated.Queries {
	return tx.(*Tx).queries()
}

// parseID converts a ledger id to its BIGINT key. Ids issued by other
// stores never match a row here.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Type conversion helpers.

// decimalToNumeric keeps the exponent so NUMERIC stores the scale the caller sent.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func pgTimestamptzToTime(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}
	return ts.Time.UTC()
}

func rowToFund(row generated.Fund) *domain.Fund {
	return &domain.Fund{
		ID:                   formatID(row.ID),
		FundName:             row.FundName,
		FundSymbol:           row.FundSymbol,
		VaultProxy:           row.VaultProxy,
		ComptrollerProxy:     row.ComptrollerProxy,
		DenominationAsset:    row.DenominationAsset,
		Creator:              row.Creator,
		TxHash:               row.TxHash,
		EntranceFeePercent:   numericToDecimal(row.EntranceFeePercent),
		EntranceFeeRecipient: row.EntranceFeeRecipient,
		Status:               domain.FundStatus(row.Status),
		CreatedAt:            pgTimestamptzToTime(row.CreatedAt),
		UpdatedAt:            pgTimestamptzToTime(row.UpdatedAt),
	}
}

func rowToInvestment(row generated.Investment) *domain.Investment {
	return &domain.Investment{
		ID:              formatID(row.ID),
		FundID:          formatID(row.FundID),
		FundName:        row.FundName,
		FundSymbol:      row.FundSymbol,
		InvestorAddress: row.InvestorAddress,
		Type:            domain.InvestmentType(row.Type),
		Amount:          numericToDecimal(row.Amount),
		Shares:          numericToDecimal(row.Shares),
		SharePrice:      numericToDecimal(row.SharePrice),
		TxHash:          row.TxHash,
		Timestamp:       pgTimestamptzToTime(row.RecordedAt),
		Status:          domain.RecordStatus(row.Status),
	}
}

func rowToSwap(row generated.Swap) *domain.Swap {
	return &domain.Swap{
		ID:         formatID(row.ID),
		FundID:     formatID(row.FundID),
		VaultProxy: row.VaultProxy,
		FromToken:  row.FromToken,
		ToToken:    row.ToToken,
		FromAmount: numericToDecimal(row.FromAmount),
		ToAmount:   numericToDecimal(row.ToAmount),
		TxHash:     row.TxHash,
		Initiator:  row.Initiator,
		Timestamp:  pgTimestamptzToTime(row.RecordedAt),
		Status:     domain.RecordStatus(row.Status),
	}
}

package sqlite

import (
	"database/sql/driver"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
)

type fundModel struct {
	ID                   int64         `gorm:"primaryKey;autoIncrement:false"`
	FundName             string        `gorm:"not null"`
	FundSymbol           string        `gorm:"not null"`
	VaultProxy           string        `gorm:"not null;index"`
	ComptrollerProxy     string        `gorm:"not null"`
	DenominationAsset    string        `gorm:"not null;default:''"`
	Creator              string        `gorm:"not null;index"`
	TxHash               string        `gorm:"not null;default:''"`
	EntranceFeePercent   scaledDecimal `gorm:"type:text;not null"`
	EntranceFeeRecipient string        `gorm:"not null;default:''"`
	Status               string        `gorm:"not null"`
	CreatedAt            time.Time     `gorm:"autoCreateTime:false"`
	UpdatedAt            time.Time     `gorm:"autoUpdateTime:false"`
}

func (fundModel) TableName() string { return "funds" }

type investmentModel struct {
	ID              int64         `gorm:"primaryKey;autoIncrement:false"`
	FundID          int64         `gorm:"not null;index"`
	FundName        string        `gorm:"not null"`
	FundSymbol      string        `gorm:"not null"`
	InvestorAddress string        `gorm:"not null"`
	Type            string        `gorm:"not null"`
	Amount          scaledDecimal `gorm:"type:text;not null"`
	Shares          scaledDecimal `gorm:"type:text;not null"`
	SharePrice      scaledDecimal `gorm:"type:text;not null"`
	TxHash          string        `gorm:"not null;index"`
	RecordedAt      time.Time     `gorm:"not null"`
	Status          string        `gorm:"not null"`
}

func (investmentModel) TableName() string { return "investments" }

type swapModel struct {
	ID         int64         `gorm:"primaryKey;autoIncrement:false"`
	FundID     int64         `gorm:"not null;index"`
	VaultProxy string        `gorm:"not null"`
	FromToken  string        `gorm:"not null"`
	ToToken    string        `gorm:"not null"`
	FromAmount scaledDecimal `gorm:"type:text;not null"`
	ToAmount   scaledDecimal `gorm:"type:text;not null"`
	TxHash     string        `gorm:"not null"`
	Initiator  string        `gorm:"not null"`
	RecordedAt time.Time     `gorm:"not null"`
	Status     string        `gorm:"not null"`
}

func (swapModel) TableName() string { return "swaps" }

type sequenceModel struct {
	Name  string `gorm:"primaryKey"`
	Value int64  `gorm:"not null"`
}

func (sequenceModel) TableName() string { return "ledger_sequences" }

// scaledDecimal stores a decimal as text without trimming trailing zeros.
type scaledDecimal struct {
	decimal.Decimal
}

func (d scaledDecimal) Value() (driver.Value, error) {
	return domain.FormatDecimal(d.Decimal), nil
}

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

func fundToModel(id int64, f *domain.Fund) fundModel {
	return fundModel{
		ID:                   id,
		FundName:             f.FundName,
		FundSymbol:           f.FundSymbol,
		VaultProxy:           f.VaultProxy,
		ComptrollerProxy:     f.ComptrollerProxy,
		DenominationAsset:    f.DenominationAsset,
		Creator:              f.Creator,
		TxHash:               f.TxHash,
		EntranceFeePercent:   scaledDecimal{f.EntranceFeePercent},
		EntranceFeeRecipient: f.EntranceFeeRecipient,
		Status:               string(f.Status),
		CreatedAt:            f.CreatedAt.UTC(),
		UpdatedAt:            f.UpdatedAt.UTC(),
	}
}

func (m fundModel) toDomain() *domain.Fund {
	return &domain.Fund{
		ID:                   formatID(m.ID),
		FundName:             m.FundName,
		FundSymbol:           m.FundSymbol,
		VaultProxy:           m.VaultProxy,
		ComptrollerProxy:     m.ComptrollerProxy,
		DenominationAsset:    m.DenominationAsset,
		Creator:              m.Creator,
		TxHash:               m.TxHash,
		EntranceFeePercent:   m.EntranceFeePercent.Decimal,
		EntranceFeeRecipient: m.EntranceFeeRecipient,
		Status:               domain.FundStatus(m.Status),
		CreatedAt:            m.CreatedAt.UTC(),
		UpdatedAt:            m.UpdatedAt.UTC(),
	}
}

func (m investmentModel) toDomain() *domain.Investment {
	return &domain.Investment{
		ID:              formatID(m.ID),
		FundID:          formatID(m.FundID),
		FundName:        m.FundName,
		FundSymbol:      m.FundSymbol,
		InvestorAddress: m.InvestorAddress,
		Type:            domain.InvestmentType(m.Type),
		Amount:          m.Amount.Decimal,
		Shares:          m.Shares.Decimal,
		SharePrice:      m.SharePrice.Decimal,
		TxHash:          m.TxHash,
		Timestamp:       m.RecordedAt.UTC(),
		Status:          domain.RecordStatus(m.Status),
	}
}

func (m swapModel) toDomain() *domain.Swap {
	return &domain.Swap{
		ID:         formatID(m.ID),
		FundID:     formatID(m.FundID),
		VaultProxy: m.VaultProxy,
		FromToken:  m.FromToken,
		ToToken:    m.ToToken,
		FromAmount: m.FromAmount.Decimal,
		ToAmount:   m.ToAmount.Decimal,
		TxHash:     m.TxHash,
		Initiator:  m.Initiator,
		Timestamp:  m.RecordedAt.UTC(),
		Status:     domain.RecordStatus(m.Status),
	}
}

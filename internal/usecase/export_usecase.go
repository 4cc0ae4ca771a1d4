package usecase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/iho/fundledger/internal/domain"
)

const exportSheet = "Investments"

var exportHeaders = []string{
	"ID", "Date", "Investor", "Type", "Amount", "Shares", "Share Price", "Tx Hash", "Status",
}

// ExportUseCase renders ledger history as spreadsheets.
type ExportUseCase struct {
	investments *InvestmentUseCase
}

// NewExportUseCase creates a new ExportUseCase.
func NewExportUseCase(investments *InvestmentUseCase) *ExportUseCase {
	return &ExportUseCase{investments: investments}
}

// ExportInvestments writes the fund history, optionally narrowed to investor, as XLSX.
// Rows are newest first, one per record, below a header row.
func (uc *ExportUseCase) ExportInvestments(ctx context.Context, fundID, investor string) ([]byte, error) {
	var (
		records []*domain.Investment
		err     error
	)
	if investor != "" {
		records, err = uc.investments.GetUserFundInvestmentHistory(ctx, fundID, investor)
	} else {
		records, err = uc.investments.GetFundInvestmentHistory(ctx, fundID)
	}
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	if err := writeRow(f, 1, toCells(exportHeaders)); err != nil {
		return nil, err
	}

	for i, r := range records {
		row := []any{
			r.ID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.InvestorAddress,
			string(r.Type),
			r.Amount.StringFixed(domain.AmountPlaces),
			r.Shares.StringFixed(domain.SharePlaces),
			r.SharePrice.StringFixed(domain.PricePlaces),
			r.TxHash,
			string(r.Status),
		}
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "B", 20)
	_ = f.SetColWidth(exportSheet, "C", "C", 44)
	_ = f.SetColWidth(exportSheet, "D", "G", 14)
	_ = f.SetColWidth(exportSheet, "H", "H", 68)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}

	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

package usecase_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/iho/fundledger/internal/usecase"
)

func TestExportUseCase_ExportInvestments(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFacade(t, usecase.FacadeConfig{})
	fund := createTestFund(t, f, "Test")

	recordTestInvestment(t, f, fund.ID, "0xA", "deposit", "1000", "1000")
	recordTestInvestment(t, f, fund.ID, "0xB", "deposit", "10.5", "10.5")
	recordTestInvestment(t, f, fund.ID, "0xA", "redeem", "200", "200")

	tests := []struct {
		name     string
		investor string
		wantRows int
	}{
		{"whole fund", "", 3},
		{"single investor", "0xa", 2},
		{"no records", "0xnobody", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := f.Exports.ExportInvestments(ctx, fund.ID, tt.investor)
			if err != nil {
				t.Fatalf("export: %v", err)
			}

			book, err := excelize.OpenReader(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("open workbook: %v", err)
			}
			defer book.Close()

			rows, err := book.GetRows("Investments")
			if err != nil {
				t.Fatalf("read rows: %v", err)
			}
			if len(rows) != tt.wantRows+1 {
				t.Fatalf("expected %d rows plus header, got %d", tt.wantRows, len(rows))
			}
			if rows[0][0] != "ID" || rows[0][3] != "Type" {
				t.Errorf("unexpected header: %v", rows[0])
			}
			if tt.wantRows == 3 {
				if rows[1][0] != "3" || rows[1][3] != "redeem" || rows[1][4] != "200.00" {
					t.Errorf("expected newest record first, got %v", rows[1])
				}
				if rows[2][5] != "10.500000" {
					t.Errorf("expected shares at six places, got %s", rows[2][5])
				}
			}
		})
	}
}

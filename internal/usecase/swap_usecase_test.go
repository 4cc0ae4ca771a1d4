package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

func TestSwapUseCase_RecordSwap(t *testing.T) {
	ctx := context.Background()
	f, store := newTestFacade(t, usecase.FacadeConfig{})
	fund := createTestFund(t, f, "Test")

	swap, err := f.Swaps.RecordSwap(ctx, usecase.RecordSwapInput{
		FundID: fund.ID, FromToken: "USDC", ToToken: "WETH", FromAmount: "1000", ToAmount: "0.4", TxHash: "0xs1", Initiator: "0xManager",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if swap.ID != "1" || swap.VaultProxy != fund.VaultProxy || swap.Status != domain.RecordCompleted {
		t.Errorf("unexpected swap: %+v", swap)
	}

	events := store.Events()
	if events[len(events)-1].EventType != domain.EventTypeSwapRecorded {
		t.Errorf("expected swap.recorded event")
	}

	tests := []struct {
		name      string
		input     usecase.RecordSwapInput
		errorType error
	}{
		{"unknown fund", usecase.RecordSwapInput{FundID: "9", FromToken: "A", ToToken: "B", FromAmount: "1", ToAmount: "1", TxHash: "0x", Initiator: "0xM"}, domain.ErrFundNotFound},
		{"missing token", usecase.RecordSwapInput{FundID: fund.ID, ToToken: "B", FromAmount: "1", ToAmount: "1", TxHash: "0x", Initiator: "0xM"}, domain.ErrValidation},
		{"bad amount", usecase.RecordSwapInput{FundID: fund.ID, FromToken: "A", ToToken: "B", FromAmount: "x", ToAmount: "1", TxHash: "0x", Initiator: "0xM"}, domain.ErrValidation},
		{"bad status", usecase.RecordSwapInput{FundID: fund.ID, FromToken: "A", ToToken: "B", FromAmount: "1", ToAmount: "1", TxHash: "0x", Initiator: "0xM", Status: "lost"}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.Swaps.RecordSwap(ctx, tt.input); !errors.Is(err, tt.errorType) {
				t.Fatalf("expected %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestSwapUseCase_History(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFacade(t, usecase.FacadeConfig{})
	a := createTestFund(t, f, "Alpha")
	b := createTestFund(t, f, "Beta")

	record := func(fundID, initiator string) {
		t.Helper()
		_, err := f.Swaps.RecordSwap(ctx, usecase.RecordSwapInput{
			FundID: fundID, FromToken: "USDC", ToToken: "WBTC", FromAmount: "1", ToAmount: "1", TxHash: "0x", Initiator: initiator,
		})
		if err != nil {
			t.Fatalf("record swap: %v", err)
		}
	}
	record(a.ID, "0xM")
	record(b.ID, "0xm")
	record(a.ID, "0xOther")

	byFund, _ := f.Swaps.GetFundSwapHistory(ctx, a.ID)
	if len(byFund) != 2 || byFund[0].ID != "3" {
		t.Fatalf("expected 2 swaps newest first, got %+v", byFund)
	}

	byUser, _ := f.Swaps.GetUserSwapHistory(ctx, "0XM")
	if len(byUser) != 2 || byUser[0].ID != "2" || byUser[1].ID != "1" {
		t.Fatalf("expected swaps 2 and 1, got %+v", byUser)
	}

	none, _ := f.Swaps.GetUserSwapHistory(ctx, "0xnobody")
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty list, got %#v", none)
	}
}

package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validFund() *Fund {
	return &Fund{
		FundName:         "Test",
		FundSymbol:       "TST",
		VaultProxy:       "0xV",
		ComptrollerProxy: "0xC",
		Creator:          "0xCreator",
	}
}

func TestFund_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(f *Fund)
		expectError error
	}{
		{name: "valid fund", mutate: func(f *Fund) {}},
		{name: "missing name", mutate: func(f *Fund) { f.FundName = "" }, expectError: ErrValidation},
		{name: "missing symbol", mutate: func(f *Fund) { f.FundSymbol = " " }, expectError: ErrValidation},
		{name: "missing vault", mutate: func(f *Fund) { f.VaultProxy = "" }, expectError: ErrValidation},
		{name: "missing comptroller", mutate: func(f *Fund) { f.ComptrollerProxy = "" }, expectError: ErrValidation},
		{name: "missing creator", mutate: func(f *Fund) { f.Creator = "" }, expectError: ErrValidation},
		{name: "fee above 100", mutate: func(f *Fund) { f.EntranceFeePercent = decimal.NewFromInt(101) }, expectError: ErrInvalidFeeValue},
		{name: "negative fee", mutate: func(f *Fund) { f.EntranceFeePercent = decimal.NewFromInt(-1) }, expectError: ErrInvalidFeeValue},
		{name: "fee of one percent", mutate: func(f *Fund) { f.EntranceFeePercent = decimal.NewFromInt(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFund()
			tt.mutate(f)

			err := f.Validate()

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestFund_MatchesQuery(t *testing.T) {
	f := validFund()
	f.FundName = "Alpha Growth"
	f.FundSymbol = "AGR"

	for _, q := range []string{"alpha", "GROWTH", "agr", "Ow"} {
		if !f.MatchesQuery(q) {
			t.Errorf("expected %q to match", q)
		}
	}
	if f.MatchesQuery("zzz") {
		t.Error("expected zzz not to match")
	}
}

func TestParseFundStatus(t *testing.T) {
	got, err := ParseFundStatus(" Paused ")
	if err != nil || got != FundStatusPaused {
		t.Fatalf("expected paused, got %q err=%v", got, err)
	}

	if _, err := ParseFundStatus("deleted"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestFund_SetStatus(t *testing.T) {
	f := validFund()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f.CreatedAt, f.UpdatedAt = created, created

	later := created.Add(time.Hour)
	f.SetStatus(FundStatusClosed, later)

	if f.Status != FundStatusClosed || !f.UpdatedAt.Equal(later) || !f.CreatedAt.Equal(created) {
		t.Fatalf("unexpected fund after status change: %+v", f)
	}
}

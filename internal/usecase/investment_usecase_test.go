package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
	"github.com/iho/fundledger/internal/usecase/mocks"
)

func TestInvestmentUseCase_RecordInvestment(t *testing.T) {
	tests := []struct {
		name      string
		input     usecase.RecordInvestmentInput
		errorType error
	}{
		{
			name: "deposit",
			input: usecase.RecordInvestmentInput{
				FundID: "1", InvestorAddress: "0xA", Type: "deposit", Amount: "1000", Shares: "1000", SharePrice: "1.00", TxHash: "0x1",
			},
		},
		{
			name: "negative amount is accepted",
			input: usecase.RecordInvestmentInput{
				FundID: "1", InvestorAddress: "0xA", Type: "redeem", Amount: "-5", Shares: "0", SharePrice: "1", TxHash: "0x2",
			},
		},
		{
			name: "unknown type",
			input: usecase.RecordInvestmentInput{
				FundID: "1", InvestorAddress: "0xA", Type: "withdraw", Amount: "1", Shares: "1", SharePrice: "1", TxHash: "0x3",
			},
			errorType: domain.ErrInvalidInvestmentType,
		},
		{
			name: "missing tx hash",
			input: usecase.RecordInvestmentInput{
				FundID: "1", InvestorAddress: "0xA", Type: "deposit", Amount: "1", Shares: "1", SharePrice: "1",
			},
			errorType: domain.ErrValidation,
		},
		{
			name: "non numeric shares",
			input: usecase.RecordInvestmentInput{
				FundID: "1", InvestorAddress: "0xA", Type: "deposit", Amount: "1", Shares: "lots", SharePrice: "1", TxHash: "0x4",
			},
			errorType: domain.ErrValidation,
		},
		{
			name: "unknown fund",
			input: usecase.RecordInvestmentInput{
				FundID: "nonexistent", InvestorAddress: "0xA", Type: "deposit", Amount: "1", Shares: "1", SharePrice: "1", TxHash: "0x5",
			},
			errorType: domain.ErrFundNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, store := newTestFacade(t, usecase.FacadeConfig{})
			fund := createTestFund(t, f, "Test")

			inv, err := f.Investments.RecordInvestment(context.Background(), tt.input)

			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected %v, got %v", tt.errorType, err)
				}
				if store.InvestmentCount() != 0 {
					t.Fatalf("expected ledger unchanged, got %d records", store.InvestmentCount())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if inv.ID != "1" {
				t.Errorf("expected id 1, got %s", inv.ID)
			}
			if inv.Status != domain.RecordCompleted {
				t.Errorf("expected completed, got %s", inv.Status)
			}
			if inv.FundName != fund.FundName || inv.FundSymbol != fund.FundSymbol {
				t.Errorf("expected fund name/symbol copied, got %s/%s", inv.FundName, inv.FundSymbol)
			}
			if inv.Timestamp.IsZero() {
				t.Errorf("expected timestamp set")
			}
		})
	}
}

func TestInvestmentUseCase_AppendOnly(t *testing.T) {
	ctx := context.Background()
	f, store := newTestFacade(t, usecase.FacadeConfig{})
	fund := createTestFund(t, f, "Test")

	const n = 5
	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		inv := recordTestInvestment(t, f, fund.ID, "0xA", "deposit", decimal.NewFromInt(int64(i+1)).String(), "1")
		if seen[inv.ID] {
			t.Fatalf("duplicate id %s", inv.ID)
		}
		seen[inv.ID] = true
	}

	history, err := f.Investments.GetFundInvestmentHistory(ctx, fund.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != n {
		t.Fatalf("expected %d records, got %d", n, len(history))
	}
	if store.InvestmentCount() != n {
		t.Fatalf("expected %d stored records, got %d", n, store.InvestmentCount())
	}

	// Same timestamp resolution is likely here, so ids break the tie.
	for i := 1; i < len(history); i++ {
		if history[i-1].Timestamp.Before(history[i].Timestamp) {
			t.Fatalf("history not newest first at %d", i)
		}
	}
	if history[0].ID != "5" {
		t.Errorf("expected newest id 5 first, got %s", history[0].ID)
	}
}

func TestInvestmentUseCase_UserHistoryIgnoresCase(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFacade(t, usecase.FacadeConfig{})
	fund := createTestFund(t, f, "Test")

	recordTestInvestment(t, f, fund.ID, "0xAbC", "deposit", "10", "10")
	recordTestInvestment(t, f, fund.ID, "0xdef", "deposit", "20", "20")
	recordTestInvestment(t, f, fund.ID, "0xabc", "redeem", "5", "5")

	upper, _ := f.Investments.GetUserFundInvestmentHistory(ctx, fund.ID, "0XABC")
	lower, _ := f.Investments.GetUserFundInvestmentHistory(ctx, fund.ID, "0xabc")
	if len(upper) != 2 || len(lower) != 2 {
		t.Fatalf("expected 2 records for both cases, got %d and %d", len(upper), len(lower))
	}

	empty, err := f.Investments.GetUserFundInvestmentHistory(ctx, fund.ID, "0xnobody")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty list, got %#v (%v)", empty, err)
	}
}

func TestInvestmentUseCase_DuplicateTxHash(t *testing.T) {
	input := usecase.RecordInvestmentInput{
		FundID: "1", InvestorAddress: "0xA", Type: "deposit", Amount: "10", Shares: "10", SharePrice: "1", TxHash: "0xsame",
	}

	t.Run("guard off records twice", func(t *testing.T) {
		f, store := newTestFacade(t, usecase.FacadeConfig{})
		createTestFund(t, f, "Test")

		for i := 0; i < 2; i++ {
			if _, err := f.Investments.RecordInvestment(context.Background(), input); err != nil {
				t.Fatalf("record %d: %v", i, err)
			}
		}
		if store.InvestmentCount() != 2 {
			t.Fatalf("expected 2 records, got %d", store.InvestmentCount())
		}
	})

	t.Run("guard on rejects replay", func(t *testing.T) {
		f, store := newTestFacade(t, usecase.FacadeConfig{RejectDuplicateTxHash: true})
		createTestFund(t, f, "Test")

		if _, err := f.Investments.RecordInvestment(context.Background(), input); err != nil {
			t.Fatalf("first record: %v", err)
		}
		_, err := f.Investments.RecordInvestment(context.Background(), input)
		if !errors.Is(err, domain.ErrDuplicateTxHash) {
			t.Fatalf("expected duplicate error, got %v", err)
		}
		if store.InvestmentCount() != 1 {
			t.Fatalf("expected 1 record, got %d", store.InvestmentCount())
		}
	})
}

func TestInvestmentUseCase_CommitFailureLeavesNothing(t *testing.T) {
	f, store := newTestFacade(t, usecase.FacadeConfig{})
	fund := createTestFund(t, f, "Test")
	eventsBefore := len(store.Events())

	store.CommitErr = errors.New("fsync failed")
	_, err := f.Investments.RecordInvestment(context.Background(), usecase.RecordInvestmentInput{
		FundID: fund.ID, InvestorAddress: "0xA", Type: "deposit", Amount: "1", Shares: "1", SharePrice: "1", TxHash: "0x1",
	})
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if store.InvestmentCount() != 0 || len(store.Events()) != eventsBefore {
		t.Fatalf("partial write visible")
	}

	store.CommitErr = nil
	inv := recordTestInvestment(t, f, fund.ID, "0xA", "deposit", "1", "1")
	if inv.ID != "1" {
		t.Errorf("expected rolled back sequence to be reused, got id %s", inv.ID)
	}
}

func TestInvestmentUseCase_SideEffects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMemoryStore()
	idGen := mocks.NewMockIDGenerator(ctrl)
	metrics := mocks.NewMockMetrics(ctrl)
	invalidator := &recordingInvalidator{}

	idGen.EXPECT().Generate().Return("evt-1").Times(2)
	metrics.EXPECT().FundCreated()
	metrics.EXPECT().InvestmentRecorded(domain.InvestmentDeposit, 250.5)
	metrics.EXPECT().WriteFailed("record_investment", "not_found")

	funds := usecase.NewFundUseCase(store, store.Funds, store.Sequences, store.Outbox, idGen, nil, metrics)
	uc := usecase.NewInvestmentUseCase(store, store.Funds, store.Investments, store.Sequences, store.Outbox, idGen, nil, invalidator, metrics, false)

	fund, err := funds.CreateFund(context.Background(), usecase.CreateFundInput{
		FundName: "Test", FundSymbol: "TST", VaultProxy: "0xV", ComptrollerProxy: "0xC", Creator: "0xCreator",
	})
	if err != nil {
		t.Fatalf("create fund: %v", err)
	}

	_, err = uc.RecordInvestment(context.Background(), usecase.RecordInvestmentInput{
		FundID: fund.ID, InvestorAddress: "0xA", Type: "deposit", Amount: "250.5", Shares: "250.5", SharePrice: "1", TxHash: "0x1",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	_, err = uc.RecordInvestment(context.Background(), usecase.RecordInvestmentInput{
		FundID: "404", InvestorAddress: "0xA", Type: "deposit", Amount: "1", Shares: "1", SharePrice: "1", TxHash: "0x2",
	})
	if !errors.Is(err, domain.ErrFundNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if len(invalidator.fundIDs) != 1 || invalidator.fundIDs[0] != fund.ID {
		t.Errorf("expected one invalidation for fund %s, got %v", fund.ID, invalidator.fundIDs)
	}

	events := store.Events()
	if len(events) != 2 || events[1].EventType != domain.EventTypeInvestmentRecorded {
		t.Errorf("expected investment.recorded event, got %+v", events)
	}
}

func TestInvestmentUseCase_RetriesWholeUnit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMemoryStore()
	retrier := mocks.NewMockRetrier(ctrl)
	attempts := 0

	retrier.EXPECT().Retry(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, op func() error) error {
		for {
			attempts++
			if err := op(); err == nil || attempts == 3 {
				return err
			}
		}
	}).AnyTimes()

	f := usecase.NewFacade(usecase.Store{
		TxManager:   store,
		Funds:       store.Funds,
		Investments: store.Investments,
		Swaps:       store.Swaps,
		Sequences:   store.Sequences,
		Retrier:     retrier,
	}, usecase.FacadeConfig{IDGen: &mocks.SequentialIDGenerator{}})
	fund := createTestFund(t, f, "Test")

	failures := 1
	store.Investments.CreateFunc = func(ctx context.Context, tx usecase.Transaction, inv *domain.Investment) error {
		if failures > 0 {
			failures--
			return errors.New("serialization failure")
		}
		store.Investments.CreateFunc = nil
		return store.Investments.Create(ctx, tx, inv)
	}

	attempts = 0
	inv := recordTestInvestment(t, f, fund.ID, "0xA", "deposit", "1", "1")
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
	if inv.ID != "1" {
		t.Errorf("expected first attempt's sequence to roll back, got id %s", inv.ID)
	}
}

type recordingInvalidator struct {
	fundIDs []string
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, fundID string) {
	r.fundIDs = append(r.fundIDs, fundID)
}

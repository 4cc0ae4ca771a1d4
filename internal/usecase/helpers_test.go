package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
	"github.com/iho/fundledger/internal/usecase/mocks"
)

func newTestFacade(t *testing.T, cfg usecase.FacadeConfig) (*usecase.Facade, *mocks.MemoryStore) {
	t.Helper()

	store := mocks.NewMemoryStore()
	if cfg.IDGen == nil {
		cfg.IDGen = &mocks.SequentialIDGenerator{}
	}
	cfg.Logger = zerolog.Nop()

	return usecase.NewFacade(store.Store(), cfg), store
}

func createTestFund(t *testing.T, f *usecase.Facade, name string) *domain.Fund {
	t.Helper()

	fund, err := f.Funds.CreateFund(context.Background(), usecase.CreateFundInput{
		FundName:          name,
		FundSymbol:        name[:1] + "F",
		VaultProxy:        "0xV-" + name,
		ComptrollerProxy:  "0xC-" + name,
		DenominationAsset: "USDC",
		Creator:           "0xCreator",
	})
	if err != nil {
		t.Fatalf("create fund %q: %v", name, err)
	}

	return fund
}

func recordTestInvestment(t *testing.T, f *usecase.Facade, fundID, investor, kind, amount, shares string) *domain.Investment {
	t.Helper()

	inv, err := f.Investments.RecordInvestment(context.Background(), usecase.RecordInvestmentInput{
		FundID:          fundID,
		InvestorAddress: investor,
		Type:            kind,
		Amount:          amount,
		Shares:          shares,
		SharePrice:      "1.00",
		TxHash:          "0xtx-" + investor + "-" + amount,
	})
	if err != nil {
		t.Fatalf("record %s %s: %v", kind, amount, err)
	}

	return inv
}

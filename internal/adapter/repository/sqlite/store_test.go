package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/fundledger/internal/adapter/repository/sqlite"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
	"github.com/iho/fundledger/internal/usecase/mocks"
)

func openFacade(t *testing.T, path string) (*usecase.Facade, *sqlite.Store) {
	t.Helper()

	store, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return usecase.NewFacade(store.Repositories(), usecase.FacadeConfig{
		IDGen:                 &mocks.SequentialIDGenerator{},
		RejectDuplicateTxHash: true,
		Logger:                zerolog.Nop(),
	}), store
}

func createFund(t *testing.T, f *usecase.Facade, name string) *domain.Fund {
	t.Helper()

	fund, err := f.Funds.CreateFund(context.Background(), usecase.CreateFundInput{
		FundName:           name,
		FundSymbol:         name[:1] + "F",
		VaultProxy:         "0xV-" + name,
		ComptrollerProxy:   "0xC-" + name,
		Creator:            "0xCreator",
		EntranceFeePercent: "2.5",
	})
	require.NoError(t, err)
	return fund
}

func recordInput(fundID, investor, kind, amount, hash string) usecase.RecordInvestmentInput {
	return usecase.RecordInvestmentInput{
		FundID:          fundID,
		InvestorAddress: investor,
		Type:            kind,
		Amount:          amount,
		Shares:          amount,
		SharePrice:      "1",
		TxHash:          hash,
	}
}

func TestSQLiteLedgerRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")
	f, _ := openFacade(t, path)

	fund := createFund(t, f, "Alpha")
	assert.Equal(t, "1", fund.ID)

	_, err := f.Investments.RecordInvestment(ctx, recordInput(fund.ID, "0xA", "deposit", "1000.123456", "0x1"))
	require.NoError(t, err)
	_, err = f.Investments.RecordInvestment(ctx, recordInput(fund.ID, "0xB", "redeem", "0.5", "0x2"))
	require.NoError(t, err)

	got, err := f.Funds.GetFund(ctx, fund.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.EntranceFeePercent.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, domain.FundStatusActive, got.Status)

	stats, err := f.Statistics.GetFundStatistics(ctx, fund.ID)
	require.NoError(t, err)
	assert.True(t, stats.NetAssets.Equal(decimal.RequireFromString("999.623456")))
	assert.Equal(t, 2, stats.TotalInvestors)
}

func TestSQLiteIDsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := sqlite.Open(path)
	require.NoError(t, err)
	f := usecase.NewFacade(store.Repositories(), usecase.FacadeConfig{IDGen: &mocks.SequentialIDGenerator{}, Logger: zerolog.Nop()})
	a := createFund(t, f, "Alpha")
	_, err = f.Investments.RecordInvestment(ctx, recordInput(a.ID, "0xA", "deposit", "10", "0x1"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	f2, _ := openFacade(t, path)
	b := createFund(t, f2, "Beta")
	inv, err := f2.Investments.RecordInvestment(ctx, recordInput(b.ID, "0xB", "deposit", "5", "0x2"))
	require.NoError(t, err)

	assert.Equal(t, "2", b.ID)
	assert.Equal(t, "2", inv.ID)
}

func TestSQLiteKeepsDecimalScale(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")
	f, _ := openFacade(t, path)

	fund, err := f.Funds.CreateFund(ctx, usecase.CreateFundInput{
		FundName:           "Alpha",
		FundSymbol:         "AF",
		VaultProxy:         "0xV",
		ComptrollerProxy:   "0xC",
		Creator:            "0xCreator",
		EntranceFeePercent: "2.50",
	})
	require.NoError(t, err)
	_, err = f.Investments.RecordInvestment(ctx, recordInput(fund.ID, "0xA", "deposit", "1.00", "0x1"))
	require.NoError(t, err)

	f2, _ := openFacade(t, path)
	got, err := f2.Funds.GetFund(ctx, fund.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2.50", domain.FormatDecimal(got.EntranceFeePercent))

	history, err := f2.Investments.GetFundInvestmentHistory(ctx, fund.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "1.00", domain.FormatDecimal(history[0].Amount))
	assert.Equal(t, "1.00", domain.FormatDecimal(history[0].Shares))
}

func TestSQLiteUnknownFundAppendsNothing(t *testing.T) {
	ctx := context.Background()
	f, _ := openFacade(t, filepath.Join(t.TempDir(), "ledger.db"))
	fund := createFund(t, f, "Alpha")

	_, err := f.Investments.RecordInvestment(ctx, recordInput("99", "0xA", "deposit", "10", "0x1"))
	assert.ErrorIs(t, err, domain.ErrFundNotFound)

	inv, err := f.Investments.RecordInvestment(ctx, recordInput(fund.ID, "0xA", "deposit", "10", "0x1"))
	require.NoError(t, err)
	assert.Equal(t, "1", inv.ID, "failed write must not consume an id")
}

func TestSQLiteDuplicateGuard(t *testing.T) {
	ctx := context.Background()
	f, _ := openFacade(t, filepath.Join(t.TempDir(), "ledger.db"))
	fund := createFund(t, f, "Alpha")

	_, err := f.Investments.RecordInvestment(ctx, recordInput(fund.ID, "0xA", "deposit", "10", "0xsame"))
	require.NoError(t, err)
	_, err = f.Investments.RecordInvestment(ctx, recordInput(fund.ID, "0xA", "deposit", "10", "0xsame"))
	assert.ErrorIs(t, err, domain.ErrDuplicateTxHash)

	history, err := f.Investments.GetFundInvestmentHistory(ctx, fund.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSQLiteStatusUpdate(t *testing.T) {
	ctx := context.Background()
	f, _ := openFacade(t, filepath.Join(t.TempDir(), "ledger.db"))
	fund := createFund(t, f, "Alpha")

	updated, err := f.Funds.UpdateFundStatus(ctx, fund.ID, "paused")
	require.NoError(t, err)
	assert.Equal(t, domain.FundStatusPaused, updated.Status)

	got, err := f.Funds.GetFund(ctx, fund.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FundStatusPaused, got.Status)

	_, err = f.Funds.UpdateFundStatus(ctx, "404", "closed")
	assert.ErrorIs(t, err, domain.ErrFundNotFound)
}

func TestSQLiteSwaps(t *testing.T) {
	ctx := context.Background()
	f, _ := openFacade(t, filepath.Join(t.TempDir(), "ledger.db"))
	fund := createFund(t, f, "Alpha")

	swap, err := f.Swaps.RecordSwap(ctx, usecase.RecordSwapInput{
		FundID:     fund.ID,
		FromToken:  "USDC",
		ToToken:    "WETH",
		FromAmount: "500",
		ToAmount:   "0.25",
		TxHash:     "0xswap",
		Initiator:  "0xTrader",
	})
	require.NoError(t, err)
	assert.Equal(t, fund.VaultProxy, swap.VaultProxy)

	swaps, err := f.Swaps.GetFundSwapHistory(ctx, fund.ID)
	require.NoError(t, err)
	require.Len(t, swaps, 1)
	assert.True(t, swaps[0].ToAmount.Equal(decimal.RequireFromString("0.25")))
}

func TestSQLiteConcurrentWritersGetDistinctIDs(t *testing.T) {
	f, _ := openFacade(t, filepath.Join(t.TempDir(), "ledger.db"))
	fund := createFund(t, f, "Alpha")

	const writers = 8
	ids := make(chan string, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inv, err := f.Investments.RecordInvestment(context.Background(),
				recordInput(fund.ID, "0xA", "deposit", "1", "0xtx"+string(rune('a'+i))))
			if assert.NoError(t, err) {
				ids <- inv.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, writers)
}

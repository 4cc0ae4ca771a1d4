package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	postgresRepo "github.com/iho/fundledger/internal/adapter/repository/postgres"
	"github.com/iho/fundledger/internal/infrastructure/postgres"
	"github.com/iho/fundledger/internal/usecase"
)

// TestDB is a migrated postgres database for integration tests.
type TestDB struct {
	Pool *pgxpool.Pool
	t    *testing.T
}

// NewTestDB connects to DATABASE_URL and applies migrations.
// The test is skipped when DATABASE_URL is unset.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	if err := postgres.RunMigrations(dbURL, zerolog.Nop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("failed to ping test database: %v", err)
	}

	db := &TestDB{Pool: pool, t: t}
	t.Cleanup(pool.Close)
	return db
}

// TruncateAll removes all rows, including the id counters.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `
		TRUNCATE TABLE outbox_events;
		TRUNCATE TABLE swaps;
		TRUNCATE TABLE investments;
		TRUNCATE TABLE funds CASCADE;
		TRUNCATE TABLE ledger_sequences;
	`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// Store returns the postgres repositories over the pool.
func (db *TestDB) Store() usecase.Store {
	return usecase.Store{
		TxManager:   postgresRepo.NewTxManager(db.Pool),
		Funds:       postgresRepo.NewFundRepository(db.Pool),
		Investments: postgresRepo.NewInvestmentRepository(db.Pool),
		Swaps:       postgresRepo.NewSwapRepository(db.Pool),
		Sequences:   postgresRepo.NewSequenceRepository(),
		Outbox:      postgresRepo.NewOutboxRepository(db.Pool),
		Retrier:     postgresRepo.NewRetrier(zerolog.Nop()),
	}
}

// Facade wires a facade over Store with ULID event ids.
func (db *TestDB) Facade() *usecase.Facade {
	return usecase.NewFacade(db.Store(), usecase.FacadeConfig{
		IDGen:  postgresRepo.NewEventIDGenerator(),
		Logger: zerolog.Nop(),
	})
}

// CreateTestFund registers an active fund with the given vault.
func (db *TestDB) CreateTestFund(ctx context.Context, facade *usecase.Facade, name, vault string) string {
	db.t.Helper()

	fund, err := facade.Funds.CreateFund(ctx, usecase.CreateFundInput{
		FundName:          name,
		FundSymbol:        "TST",
		VaultProxy:        vault,
		ComptrollerProxy:  vault + "-comptroller",
		DenominationAsset: "USDC",
		Creator:           "0xManager",
	})
	if err != nil {
		db.t.Fatalf("failed to create test fund: %v", err)
	}
	return fund.ID
}

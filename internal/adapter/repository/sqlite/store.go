// Package sqlite implements the ledger store on an embedded SQLite database
// through gorm and the pure-Go glebarez driver.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// Store wraps a gorm connection. SQLite allows a single writer, so Begin also
// takes a process-wide write slot to avoid SQLITE_BUSY churn.
type Store struct {
	db  *gorm.DB
	sem chan struct{}
}

// Open opens (or creates) the database at path and migrates the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create %s: %w", domain.ErrStorage, dir, err)
		}
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrStorage, path, err)
	}

	s := &Store{db: db, sem: make(chan struct{}, 1)}
	if err := s.migrate(); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate() error {
	if err := s.db.AutoMigrate(&fundModel{}, &investmentModel{}, &swapModel{}, &sequenceModel{}); err != nil {
		return fmt.Errorf("%w: migrate: %w", domain.ErrStorage, err)
	}

	for _, name := range []string{usecase.SequenceFund, usecase.SequenceInvestment, usecase.SequenceSwap} {
		err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&sequenceModel{Name: name}).Error
		if err != nil {
			return fmt.Errorf("%w: seed sequence %s: %w", domain.ErrStorage, name, err)
		}
	}

	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Repositories returns the store wired as a usecase.Store.
func (s *Store) Repositories() usecase.Store {
	return usecase.Store{
		TxManager:   s,
		Funds:       &FundRepository{db: s.db},
		Investments: &InvestmentRepository{db: s.db},
		Swaps:       &SwapRepository{db: s.db},
		Sequences:   &SequenceRepository{},
	}
}

// Begin implements usecase.TransactionManager.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		<-s.sem
		return nil, tx.Error
	}

	return &Tx{tx: tx, sem: s.sem}, nil
}

// Tx wraps a gorm transaction.
type Tx struct {
	tx   *gorm.DB
	sem  chan struct{}
	done bool
}

// Commit commits the transaction.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("sqlite: transaction already closed")
	}
	t.done = true
	defer func() { <-t.sem }()

	return t.tx.Commit().Error
}

// Rollback rolls back the transaction. Safe to call after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	defer func() { <-t.sem }()

	return t.tx.Rollback().Error
}

func txDB(ctx context.Context, tx usecase.Transaction) *gorm.DB {
	stx, ok := tx.(*Tx)
	if !ok {
		panic(fmt.Sprintf("sqlite: unexpected transaction type %T", tx))
	}
	return stx.tx.WithContext(ctx)
}

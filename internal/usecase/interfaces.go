package usecase

import (
	"context"
	"time"

	"github.com/iho/fundledger/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// Sequence names used by the ledger store.
const (
	SequenceFund       = "fund"
	SequenceInvestment = "investment"
	SequenceSwap       = "swap"
)

// FundRepository defines data access for funds.
type FundRepository interface {
	Create(ctx context.Context, tx Transaction, fund *domain.Fund) error
	Update(ctx context.Context, tx Transaction, fund *domain.Fund) error
	// GetByIDTx returns domain.ErrFundNotFound when absent.
	GetByIDTx(ctx context.Context, tx Transaction, id string) (*domain.Fund, error)
	// GetByID returns domain.ErrFundNotFound when absent.
	GetByID(ctx context.Context, id string) (*domain.Fund, error)
	// List returns every fund in insertion order.
	List(ctx context.Context) ([]*domain.Fund, error)
}

// InvestmentRepository defines data access for the append-only investment ledger.
type InvestmentRepository interface {
	Create(ctx context.Context, tx Transaction, investment *domain.Investment) error
	ExistsByTxHash(ctx context.Context, tx Transaction, txHash string) (bool, error)
	ListByFund(ctx context.Context, fundID string) ([]*domain.Investment, error)
	List(ctx context.Context) ([]*domain.Investment, error)
}

// SwapRepository defines data access for recorded vault swaps.
type SwapRepository interface {
	Create(ctx context.Context, tx Transaction, swap *domain.Swap) error
	ListByFund(ctx context.Context, fundID string) ([]*domain.Swap, error)
	List(ctx context.Context) ([]*domain.Swap, error)
}

// SequenceRepository hands out strictly increasing, persisted counters.
type SequenceRepository interface {
	Next(ctx context.Context, tx Transaction, name string) (int64, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a ledger write unit.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
// Begin blocks until the caller holds exclusive write access to the ledger.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs a whole unit of work on transient conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock returns the current time.
type Clock func() time.Time

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a pending claim so the request can be retried.
	Release(ctx context.Context, key string) error
}

// ObjectStore uploads opaque blobs such as ledger snapshots.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

// Metrics receives business events. Implementations must be safe for concurrent use.
type Metrics interface {
	FundCreated()
	InvestmentRecorded(t domain.InvestmentType, amount float64)
	SwapRecorded()
	StatisticsComputed(cached bool)
	WriteFailed(operation, reason string)
}

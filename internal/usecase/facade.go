package usecase

import (
	"time"

	"github.com/rs/zerolog"
)

// Store bundles the repositories of one ledger backend.
type Store struct {
	TxManager   TransactionManager
	Funds       FundRepository
	Investments InvestmentRepository
	Swaps       SwapRepository
	Sequences   SequenceRepository
	// Outbox is nil for backends without an event outbox.
	Outbox OutboxRepository
	// Retrier is nil for backends that never report transient conflicts.
	Retrier Retrier
}

// FacadeConfig holds the optional collaborators of a Facade.
type FacadeConfig struct {
	IDGen                 IDGenerator
	Cache                 Cache
	StatsCacheTTL         time.Duration
	Metrics               Metrics
	Backups               ObjectStore
	BackupPrefix          string
	RejectDuplicateTxHash bool
	Logger                zerolog.Logger
}

// Facade is the single entry point transports use to reach the ledger.
type Facade struct {
	Funds       *FundUseCase
	Investments *InvestmentUseCase
	Statistics  *StatisticsUseCase
	Swaps       *SwapUseCase
	Portfolios  *PortfolioUseCase
	Exports     *ExportUseCase
	Backups     *BackupUseCase
}

// NewFacade wires every use case over store.
func NewFacade(store Store, cfg FacadeConfig) *Facade {
	stats := NewStatisticsUseCase(store.Funds, store.Investments, cfg.Cache, cfg.StatsCacheTTL, cfg.Metrics, cfg.Logger)
	investments := NewInvestmentUseCase(
		store.TxManager,
		store.Funds,
		store.Investments,
		store.Sequences,
		store.Outbox,
		cfg.IDGen,
		store.Retrier,
		stats,
		cfg.Metrics,
		cfg.RejectDuplicateTxHash,
	)

	return &Facade{
		Funds:       NewFundUseCase(store.TxManager, store.Funds, store.Sequences, store.Outbox, cfg.IDGen, store.Retrier, cfg.Metrics),
		Investments: investments,
		Statistics:  stats,
		Swaps:       NewSwapUseCase(store.TxManager, store.Funds, store.Swaps, store.Sequences, store.Outbox, cfg.IDGen, store.Retrier, cfg.Metrics),
		Portfolios:  NewPortfolioUseCase(store.Funds, store.Investments, stats),
		Exports:     NewExportUseCase(investments),
		Backups:     NewBackupUseCase(store.Funds, store.Investments, store.Swaps, cfg.Backups, cfg.IDGen, cfg.BackupPrefix),
	}
}

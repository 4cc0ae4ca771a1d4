package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iho/fundledger/internal/domain"
)

// ErrBackupDisabled is returned when no object store is configured.
var ErrBackupDisabled = fmt.Errorf("%w: backup bucket not configured", domain.ErrValidation)

// Snapshot is a point-in-time copy of every ledger record.
type Snapshot struct {
	TakenAt     time.Time            `json:"takenAt"`
	Funds       []*domain.Fund       `json:"funds"`
	Investments []*domain.Investment `json:"investments"`
	Swaps       []*domain.Swap       `json:"swaps"`
}

// BackupUseCase uploads ledger snapshots to object storage.
type BackupUseCase struct {
	fundRepo       FundRepository
	investmentRepo InvestmentRepository
	swapRepo       SwapRepository
	store          ObjectStore
	idGen          IDGenerator
	prefix         string
}

// NewBackupUseCase creates a new BackupUseCase. store may be nil, disabling backups.
func NewBackupUseCase(
	fundRepo FundRepository,
	investmentRepo InvestmentRepository,
	swapRepo SwapRepository,
	store ObjectStore,
	idGen IDGenerator,
	prefix string,
) *BackupUseCase {
	return &BackupUseCase{
		fundRepo:       fundRepo,
		investmentRepo: investmentRepo,
		swapRepo:       swapRepo,
		store:          store,
		idGen:          idGen,
		prefix:         prefix,
	}
}

// TakeSnapshot reads every record. It does not upload.
func (uc *BackupUseCase) TakeSnapshot(ctx context.Context) (*Snapshot, error) {
	funds, err := uc.fundRepo.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	investments, err := uc.investmentRepo.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	swaps, err := uc.swapRepo.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	return &Snapshot{
		TakenAt:     time.Now().UTC(),
		Funds:       funds,
		Investments: investments,
		Swaps:       swaps,
	}, nil
}

// Backup uploads a JSON snapshot and returns its object key.
func (uc *BackupUseCase) Backup(ctx context.Context) (string, error) {
	if uc.store == nil {
		return "", ErrBackupDisabled
	}

	snapshot, err := uc.TakeSnapshot(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("%s%s/%s.json", uc.prefix, snapshot.TakenAt.Format("2006/01/02"), uc.idGen.Generate())
	if err := uc.store.Put(ctx, key, "application/json", body); err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	return key, nil
}

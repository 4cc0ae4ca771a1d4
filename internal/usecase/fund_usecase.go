package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
)

// FundUseCase handles fund registration and lookup.
type FundUseCase struct {
	uow        unitOfWork
	fundRepo   FundRepository
	sequences  SequenceRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
	metrics    Metrics
}

// NewFundUseCase creates a new FundUseCase. outboxRepo, retrier and metrics may be nil.
func NewFundUseCase(
	txManager TransactionManager,
	fundRepo FundRepository,
	sequences SequenceRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics Metrics,
) *FundUseCase {
	return &FundUseCase{
		uow:        unitOfWork{txManager: txManager, retrier: retrier},
		fundRepo:   fundRepo,
		sequences:  sequences,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		metrics:    metricsOrNoop(metrics),
	}
}

// CreateFundInput represents input for registering a fund.
type CreateFundInput struct {
	FundName             string
	FundSymbol           string
	VaultProxy           string
	ComptrollerProxy     string
	DenominationAsset    string
	Creator              string
	TxHash               string
	EntranceFeePercent   string
	EntranceFeeRecipient string
}

// FundFilter selects funds. The first non-empty field wins: Vault, then Creator, then Search.
type FundFilter struct {
	Vault   string
	Creator string
	Search  string
}

// CreateFund validates and appends a new active fund.
func (uc *FundUseCase) CreateFund(ctx context.Context, input CreateFundInput) (*domain.Fund, error) {
	fee := decimal.Zero
	if strings.TrimSpace(input.EntranceFeePercent) != "" {
		var err error
		fee, err = domain.ParseDecimalField("entranceFeePercent", input.EntranceFeePercent)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	fund := &domain.Fund{
		FundName:             strings.TrimSpace(input.FundName),
		FundSymbol:           strings.TrimSpace(input.FundSymbol),
		VaultProxy:           strings.TrimSpace(input.VaultProxy),
		ComptrollerProxy:     strings.TrimSpace(input.ComptrollerProxy),
		DenominationAsset:    strings.TrimSpace(input.DenominationAsset),
		Creator:              strings.TrimSpace(input.Creator),
		TxHash:               strings.TrimSpace(input.TxHash),
		EntranceFeePercent:   fee,
		EntranceFeeRecipient: strings.TrimSpace(input.EntranceFeeRecipient),
		Status:               domain.FundStatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := fund.Validate(); err != nil {
		uc.metrics.WriteFailed("create_fund", failureReason(err))
		return nil, err
	}

	err := uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		seq, err := uc.sequences.Next(ctx, tx, SequenceFund)
		if err != nil {
			return storageErr(err)
		}
		fund.ID = strconv.FormatInt(seq, 10)

		if err := uc.fundRepo.Create(ctx, tx, fund); err != nil {
			return storageErr(err)
		}

		if uc.outboxRepo != nil {
			if err := uc.outboxRepo.Create(ctx, tx, domain.NewFundCreatedEvent(uc.idGen.Generate(), fund)); err != nil {
				return storageErr(err)
			}
		}

		return nil
	})
	if err != nil {
		uc.metrics.WriteFailed("create_fund", failureReason(err))
		return nil, err
	}

	uc.metrics.FundCreated()

	return fund, nil
}

// GetFund returns the fund or nil when no fund has that id.
func (uc *FundUseCase) GetFund(ctx context.Context, id string) (*domain.Fund, error) {
	fund, err := uc.fundRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storageErr(err)
	}

	return fund, nil
}

// GetFundByVault returns the fund whose vault matches, ignoring case, or nil.
func (uc *FundUseCase) GetFundByVault(ctx context.Context, vault string) (*domain.Fund, error) {
	funds, err := uc.allFunds(ctx)
	if err != nil {
		return nil, err
	}

	for _, f := range funds {
		if domain.SameAddress(f.VaultProxy, vault) {
			return f, nil
		}
	}

	return nil, nil
}

// ListFundsByCreator returns every fund registered by creator, ignoring case.
func (uc *FundUseCase) ListFundsByCreator(ctx context.Context, creator string) ([]*domain.Fund, error) {
	funds, err := uc.allFunds(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Fund, 0)
	for _, f := range funds {
		if domain.SameAddress(f.Creator, creator) {
			out = append(out, f)
		}
	}

	return out, nil
}

// SearchFunds matches query as a substring of name or symbol, ignoring case.
func (uc *FundUseCase) SearchFunds(ctx context.Context, query string) ([]*domain.Fund, error) {
	funds, err := uc.allFunds(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Fund, 0)
	for _, f := range funds {
		if f.MatchesQuery(query) {
			out = append(out, f)
		}
	}

	return out, nil
}

// ListFunds applies filter and returns matches in insertion order.
func (uc *FundUseCase) ListFunds(ctx context.Context, filter FundFilter) ([]*domain.Fund, error) {
	switch {
	case filter.Vault != "":
		fund, err := uc.GetFundByVault(ctx, filter.Vault)
		if err != nil {
			return nil, err
		}
		if fund == nil {
			return []*domain.Fund{}, nil
		}
		return []*domain.Fund{fund}, nil
	case filter.Creator != "":
		return uc.ListFundsByCreator(ctx, filter.Creator)
	case filter.Search != "":
		return uc.SearchFunds(ctx, filter.Search)
	default:
		return uc.allFunds(ctx)
	}
}

// UpdateFundStatus moves a fund to active, paused or closed.
func (uc *FundUseCase) UpdateFundStatus(ctx context.Context, id, status string) (*domain.Fund, error) {
	next, err := domain.ParseFundStatus(status)
	if err != nil {
		return nil, err
	}

	var fund *domain.Fund
	err = uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		current, err := uc.fundRepo.GetByIDTx(ctx, tx, id)
		if err != nil {
			return storageErr(err)
		}

		previous := current.Status
		current.SetStatus(next, time.Now().UTC())

		if err := uc.fundRepo.Update(ctx, tx, current); err != nil {
			return storageErr(err)
		}

		if uc.outboxRepo != nil {
			event := domain.NewFundStatusChangedEvent(uc.idGen.Generate(), current, previous)
			if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
				return storageErr(err)
			}
		}

		fund = current
		return nil
	})
	if err != nil {
		uc.metrics.WriteFailed("update_fund_status", failureReason(err))
		return nil, err
	}

	return fund, nil
}

func (uc *FundUseCase) allFunds(ctx context.Context) ([]*domain.Fund, error) {
	funds, err := uc.fundRepo.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	if funds == nil {
		funds = []*domain.Fund{}
	}

	return funds, nil
}

func isNotFound(err error) bool {
	return err != nil && errors.Is(err, domain.ErrNotFound)
}

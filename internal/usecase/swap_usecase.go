package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/iho/fundledger/internal/domain"
)

// SwapUseCase records asset swaps executed by fund vaults.
type SwapUseCase struct {
	uow        unitOfWork
	fundRepo   FundRepository
	swapRepo   SwapRepository
	sequences  SequenceRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
	metrics    Metrics
}

// NewSwapUseCase creates a new SwapUseCase. outboxRepo, retrier and metrics may be nil.
func NewSwapUseCase(
	txManager TransactionManager,
	fundRepo FundRepository,
	swapRepo SwapRepository,
	sequences SequenceRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	metrics Metrics,
) *SwapUseCase {
	return &SwapUseCase{
		uow:        unitOfWork{txManager: txManager, retrier: retrier},
		fundRepo:   fundRepo,
		swapRepo:   swapRepo,
		sequences:  sequences,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		metrics:    metricsOrNoop(metrics),
	}
}

// RecordSwapInput represents input for recording a swap.
type RecordSwapInput struct {
	FundID     string
	FromToken  string
	ToToken    string
	FromAmount string
	ToAmount   string
	TxHash     string
	Initiator  string
	Status     string
}

// RecordSwap appends a swap against an existing fund. The vault is taken from the fund.
func (uc *SwapUseCase) RecordSwap(ctx context.Context, input RecordSwapInput) (*domain.Swap, error) {
	swap, err := buildSwap(input)
	if err != nil {
		uc.metrics.WriteFailed("record_swap", failureReason(err))
		return nil, err
	}

	err = uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		fund, err := uc.fundRepo.GetByIDTx(ctx, tx, swap.FundID)
		if err != nil {
			return storageErr(err)
		}

		seq, err := uc.sequences.Next(ctx, tx, SequenceSwap)
		if err != nil {
			return storageErr(err)
		}

		swap.ID = strconv.FormatInt(seq, 10)
		swap.VaultProxy = fund.VaultProxy
		swap.Timestamp = time.Now().UTC()

		if err := uc.swapRepo.Create(ctx, tx, swap); err != nil {
			return storageErr(err)
		}

		if uc.outboxRepo != nil {
			if err := uc.outboxRepo.Create(ctx, tx, domain.NewSwapRecordedEvent(uc.idGen.Generate(), swap)); err != nil {
				return storageErr(err)
			}
		}

		return nil
	})
	if err != nil {
		uc.metrics.WriteFailed("record_swap", failureReason(err))
		return nil, err
	}

	uc.metrics.SwapRecorded()

	return swap, nil
}

func buildSwap(input RecordSwapInput) (*domain.Swap, error) {
	if err := domain.ValidateRequired(
		domain.RequiredField{Name: "fundId", Value: input.FundID},
		domain.RequiredField{Name: "fromToken", Value: input.FromToken},
		domain.RequiredField{Name: "toToken", Value: input.ToToken},
		domain.RequiredField{Name: "txHash", Value: input.TxHash},
		domain.RequiredField{Name: "initiator", Value: input.Initiator},
	); err != nil {
		return nil, err
	}

	fromAmount, err := domain.ParseDecimalField("fromAmount", input.FromAmount)
	if err != nil {
		return nil, err
	}

	toAmount, err := domain.ParseDecimalField("toAmount", input.ToAmount)
	if err != nil {
		return nil, err
	}

	status, err := domain.ParseRecordStatus(strings.TrimSpace(input.Status))
	if err != nil {
		return nil, err
	}

	return &domain.Swap{
		FundID:     strings.TrimSpace(input.FundID),
		FromToken:  strings.TrimSpace(input.FromToken),
		ToToken:    strings.TrimSpace(input.ToToken),
		FromAmount: fromAmount,
		ToAmount:   toAmount,
		TxHash:     strings.TrimSpace(input.TxHash),
		Initiator:  strings.TrimSpace(input.Initiator),
		Status:     status,
	}, nil
}

// GetFundSwapHistory returns swaps of fundID, newest first.
func (uc *SwapUseCase) GetFundSwapHistory(ctx context.Context, fundID string) ([]*domain.Swap, error) {
	swaps, err := uc.swapRepo.ListByFund(ctx, fundID)
	if err != nil {
		return nil, storageErr(err)
	}
	if swaps == nil {
		swaps = []*domain.Swap{}
	}

	domain.SortSwapsNewestFirst(swaps)

	return swaps, nil
}

// GetUserSwapHistory returns swaps initiated by initiator across all funds, newest first.
func (uc *SwapUseCase) GetUserSwapHistory(ctx context.Context, initiator string) ([]*domain.Swap, error) {
	all, err := uc.swapRepo.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}

	swaps := make([]*domain.Swap, 0)
	for _, s := range all {
		if domain.SameAddress(s.Initiator, initiator) {
			swaps = append(swaps, s)
		}
	}

	domain.SortSwapsNewestFirst(swaps)

	return swaps, nil
}

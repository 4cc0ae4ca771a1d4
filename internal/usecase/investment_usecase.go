package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/iho/fundledger/internal/domain"
)

// StatisticsInvalidator is notified after a committed ledger append.
type StatisticsInvalidator interface {
	Invalidate(ctx context.Context, fundID string)
}

// InvestmentUseCase records deposits and redemptions and serves ledger history.
type InvestmentUseCase struct {
	uow              unitOfWork
	fundRepo         FundRepository
	investmentRepo   InvestmentRepository
	sequences        SequenceRepository
	outboxRepo       OutboxRepository
	idGen            IDGenerator
	invalidator      StatisticsInvalidator
	metrics          Metrics
	rejectDuplicates bool
}

// NewInvestmentUseCase creates a new InvestmentUseCase. outboxRepo, retrier,
// invalidator and metrics may be nil.
func NewInvestmentUseCase(
	txManager TransactionManager,
	fundRepo FundRepository,
	investmentRepo InvestmentRepository,
	sequences SequenceRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	invalidator StatisticsInvalidator,
	metrics Metrics,
	rejectDuplicates bool,
) *InvestmentUseCase {
	return &InvestmentUseCase{
		uow:              unitOfWork{txManager: txManager, retrier: retrier},
		fundRepo:         fundRepo,
		investmentRepo:   investmentRepo,
		sequences:        sequences,
		outboxRepo:       outboxRepo,
		idGen:            idGen,
		invalidator:      invalidator,
		metrics:          metricsOrNoop(metrics),
		rejectDuplicates: rejectDuplicates,
	}
}

// RecordInvestmentInput carries an untyped deposit or redeem request.
type RecordInvestmentInput struct {
	FundID          string
	InvestorAddress string
	Type            string
	Amount          string
	Shares          string
	SharePrice      string
	TxHash          string
}

// RecordInvestment validates input and appends a completed record.
// Amounts are not checked for sign; over-redemption is not prevented.
func (uc *InvestmentUseCase) RecordInvestment(ctx context.Context, input RecordInvestmentInput) (*domain.Investment, error) {
	investment, err := uc.buildInvestment(input)
	if err != nil {
		uc.metrics.WriteFailed("record_investment", failureReason(err))
		return nil, err
	}

	err = uc.uow.run(ctx, func(ctx context.Context, tx Transaction) error {
		fund, err := uc.fundRepo.GetByIDTx(ctx, tx, investment.FundID)
		if err != nil {
			return storageErr(err)
		}

		if uc.rejectDuplicates {
			exists, err := uc.investmentRepo.ExistsByTxHash(ctx, tx, investment.TxHash)
			if err != nil {
				return storageErr(err)
			}
			if exists {
				return domain.ErrDuplicateTxHash
			}
		}

		seq, err := uc.sequences.Next(ctx, tx, SequenceInvestment)
		if err != nil {
			return storageErr(err)
		}

		investment.ID = strconv.FormatInt(seq, 10)
		investment.FundName = fund.FundName
		investment.FundSymbol = fund.FundSymbol
		investment.Timestamp = time.Now().UTC()

		if err := uc.investmentRepo.Create(ctx, tx, investment); err != nil {
			return storageErr(err)
		}

		if uc.outboxRepo != nil {
			event := domain.NewInvestmentRecordedEvent(uc.idGen.Generate(), investment)
			if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
				return storageErr(err)
			}
		}

		return nil
	})
	if err != nil {
		uc.metrics.WriteFailed("record_investment", failureReason(err))
		return nil, err
	}

	if uc.invalidator != nil {
		uc.invalidator.Invalidate(ctx, investment.FundID)
	}
	uc.metrics.InvestmentRecorded(investment.Type, investment.Amount.InexactFloat64())

	return investment, nil
}

func (uc *InvestmentUseCase) buildInvestment(input RecordInvestmentInput) (*domain.Investment, error) {
	if err := domain.ValidateRequired(
		domain.RequiredField{Name: "fundId", Value: input.FundID},
		domain.RequiredField{Name: "investorAddress", Value: input.InvestorAddress},
		domain.RequiredField{Name: "type", Value: input.Type},
		domain.RequiredField{Name: "txHash", Value: input.TxHash},
	); err != nil {
		return nil, err
	}

	kind, err := domain.ParseInvestmentType(strings.TrimSpace(input.Type))
	if err != nil {
		return nil, err
	}

	amount, err := domain.ParseDecimalField("amount", input.Amount)
	if err != nil {
		return nil, err
	}

	shares, err := domain.ParseDecimalField("shares", input.Shares)
	if err != nil {
		return nil, err
	}

	price, err := domain.ParseDecimalField("sharePrice", input.SharePrice)
	if err != nil {
		return nil, err
	}

	return &domain.Investment{
		FundID:          strings.TrimSpace(input.FundID),
		InvestorAddress: strings.TrimSpace(input.InvestorAddress),
		Type:            kind,
		Amount:          amount,
		Shares:          shares,
		SharePrice:      price,
		TxHash:          strings.TrimSpace(input.TxHash),
		Status:          domain.RecordCompleted,
	}, nil
}

// GetFundInvestmentHistory returns every record of fundID, newest first.
func (uc *InvestmentUseCase) GetFundInvestmentHistory(ctx context.Context, fundID string) ([]*domain.Investment, error) {
	records, err := uc.investmentRepo.ListByFund(ctx, fundID)
	if err != nil {
		return nil, storageErr(err)
	}

	records = domain.FilterByFund(records, fundID)
	domain.SortNewestFirst(records)

	return records, nil
}

// GetUserFundInvestmentHistory returns investor's records in fundID, newest first.
func (uc *InvestmentUseCase) GetUserFundInvestmentHistory(ctx context.Context, fundID, investor string) ([]*domain.Investment, error) {
	records, err := uc.GetFundInvestmentHistory(ctx, fundID)
	if err != nil {
		return nil, err
	}

	return domain.FilterByInvestor(records, investor), nil
}

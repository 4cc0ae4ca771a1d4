package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/domain"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

const (
	statsKeyPrefix      = "fund-stats:"
	statsGenerationKey  = "fund-stats-gen:"
	initialGenerationID = "0"
)

// StatisticsUseCase derives fund statistics and investor summaries from the ledger.
// Results are recomputed from the records on every miss; the optional cache only
// memoizes a computation for one ledger generation.
type StatisticsUseCase struct {
	fundRepo       FundRepository
	investmentRepo InvestmentRepository
	cache          Cache
	ttl            time.Duration
	metrics        Metrics
	logger         zerolog.Logger
}

// NewStatisticsUseCase creates a new StatisticsUseCase. cache and metrics may be nil.
func NewStatisticsUseCase(
	fundRepo FundRepository,
	investmentRepo InvestmentRepository,
	cache Cache,
	ttl time.Duration,
	metrics Metrics,
	logger zerolog.Logger,
) *StatisticsUseCase {
	if ttl <= 0 {
		ttl = DefaultStatsCacheTTL
	}

	return &StatisticsUseCase{
		fundRepo:       fundRepo,
		investmentRepo: investmentRepo,
		cache:          cache,
		ttl:            ttl,
		metrics:        metricsOrNoop(metrics),
		logger:         logger,
	}
}

// GetFundStatistics folds every record of fundID. A fund without records yields
// zeroed figures at par price.
func (uc *StatisticsUseCase) GetFundStatistics(ctx context.Context, fundID string) (domain.FundStatistics, error) {
	key, cacheable := uc.cacheKey(ctx, fundID)
	if cacheable {
		if stats, ok := uc.readCached(ctx, key); ok {
			uc.metrics.StatisticsComputed(true)
			return stats, nil
		}
	}

	records, err := uc.investmentRepo.ListByFund(ctx, fundID)
	if err != nil {
		return domain.FundStatistics{}, storageErr(err)
	}

	stats := domain.ComputeFundStatistics(fundID, records)
	uc.metrics.StatisticsComputed(false)

	if cacheable {
		uc.writeCached(ctx, key, stats)
	}

	return stats, nil
}

// GetUserInvestmentSummary returns investor's position in fundID, or nil when the fund
// does not exist or the investor never interacted with it.
func (uc *StatisticsUseCase) GetUserInvestmentSummary(ctx context.Context, fundID, investor string) (*domain.InvestorSummary, error) {
	fund, err := uc.fundRepo.GetByID(ctx, fundID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storageErr(err)
	}

	stats, err := uc.GetFundStatistics(ctx, fundID)
	if err != nil {
		return nil, err
	}

	records, err := uc.investmentRepo.ListByFund(ctx, fundID)
	if err != nil {
		return nil, storageErr(err)
	}

	return domain.ComputeInvestorSummary(fund, investor, records, stats.CurrentSharePrice), nil
}

// Invalidate starts a new cache generation for fundID so the next read recomputes,
// then drops the entry of the generation it replaced.
func (uc *StatisticsUseCase) Invalidate(ctx context.Context, fundID string) {
	if uc.cache == nil {
		return
	}

	next, err := uc.cache.Incr(ctx, statsGenerationKey+fundID)
	if err != nil {
		uc.logger.Warn().Err(err).Str("fund_id", fundID).Msg("failed to bump statistics cache generation")
		return
	}

	stale := statsKey(fundID, strconv.FormatInt(next-1, 10))
	if err := uc.cache.Delete(ctx, stale); err != nil {
		uc.logger.Debug().Err(err).Str("key", stale).Msg("failed to drop superseded statistics entry")
	}
}

func (uc *StatisticsUseCase) cacheKey(ctx context.Context, fundID string) (string, bool) {
	if uc.cache == nil {
		return "", false
	}

	generation, err := uc.cache.Get(ctx, statsGenerationKey+fundID)
	switch {
	case errors.Is(err, ErrCacheMiss):
		generation = initialGenerationID
	case err != nil:
		uc.logger.Warn().Err(err).Str("fund_id", fundID).Msg("statistics cache unavailable")
		return "", false
	}

	return statsKey(fundID, generation), true
}

func statsKey(fundID, generation string) string {
	return fmt.Sprintf("%s%s:%s", statsKeyPrefix, fundID, generation)
}

func (uc *StatisticsUseCase) readCached(ctx context.Context, key string) (domain.FundStatistics, bool) {
	raw, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Str("key", key).Msg("statistics cache read failed")
		}
		return domain.FundStatistics{}, false
	}

	var stats domain.FundStatistics
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("discarding malformed statistics cache entry")
		return domain.FundStatistics{}, false
	}

	return stats, true
}

func (uc *StatisticsUseCase) writeCached(ctx context.Context, key string, stats domain.FundStatistics) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, key, string(raw), uc.ttl); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("statistics cache write failed")
	}
}

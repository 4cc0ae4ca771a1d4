package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/adapter/http/handler"
	"github.com/iho/fundledger/internal/adapter/http/middleware"
	"github.com/iho/fundledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	FundHandler       *handler.FundHandler
	InvestmentHandler *handler.InvestmentHandler
	StatisticsHandler *handler.StatisticsHandler
	SwapHandler       *handler.SwapHandler
	PortfolioHandler  *handler.PortfolioHandler
	BackupHandler     *handler.BackupHandler
	HealthHandler     *handler.HealthHandler

	Logger zerolog.Logger
	// Gatherer serves /metrics when set.
	Gatherer    prometheus.Gatherer
	HTTPMetrics *middleware.HTTPMetrics
	RateLimiter *middleware.RateLimiter

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
}

// HandlersFromFacade builds every API handler over facade.
func HandlersFromFacade(facade *usecase.Facade, log zerolog.Logger, checks ...handler.Check) RouterConfig {
	return RouterConfig{
		FundHandler:       handler.NewFundHandler(facade.Funds, log),
		InvestmentHandler: handler.NewInvestmentHandler(facade.Investments, facade.Statistics, facade.Exports, log),
		StatisticsHandler: handler.NewStatisticsHandler(facade.Statistics, log),
		SwapHandler:       handler.NewSwapHandler(facade.Swaps, log),
		PortfolioHandler:  handler.NewPortfolioHandler(facade.Portfolios, log),
		BackupHandler:     handler.NewBackupHandler(facade.Backups, log),
		HealthHandler:     handler.NewHealthHandler(checks...),
		Logger:            log,
	}
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
		}

		r.Route("/funds", func(r chi.Router) {
			r.Post("/", cfg.FundHandler.Create)
			r.Get("/", cfg.FundHandler.List)
			r.Get("/by-vault/{vault}", cfg.FundHandler.GetByVault)
			r.Get("/{id}", cfg.FundHandler.Get)
			r.Patch("/{id}/status", cfg.FundHandler.UpdateStatus)
			r.Get("/{id}/statistics", cfg.StatisticsHandler.Get)
			r.Get("/{id}/investments", cfg.InvestmentHandler.History)
			r.Get("/{id}/investments/summary", cfg.InvestmentHandler.Summary)
			r.Get("/{id}/investments/export", cfg.InvestmentHandler.Export)
			r.Get("/{id}/swaps", cfg.SwapHandler.ListByFund)
		})

		r.Post("/investments", cfg.InvestmentHandler.Record)

		r.Route("/swaps", func(r chi.Router) {
			r.Post("/", cfg.SwapHandler.Record)
			r.Get("/", cfg.SwapHandler.ListByInitiator)
		})

		r.Get("/investors/{address}/portfolio", cfg.PortfolioHandler.Portfolio)
		r.Get("/overview", cfg.PortfolioHandler.Overview)

		if cfg.BackupHandler != nil {
			r.Post("/backups", cfg.BackupHandler.Create)
		}
	})

	return r
}

package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
)

// PortfolioService defines the behavior needed by PortfolioHandler.
type PortfolioService interface {
	GetInvestorPortfolio(ctx context.Context, investor string) (*domain.PortfolioSummary, error)
	GetPlatformOverview(ctx context.Context) (*domain.PlatformOverview, error)
}

// PortfolioHandler serves dashboard aggregates.
type PortfolioHandler struct {
	responder
	portfolioUC PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioUC PortfolioService, log zerolog.Logger) *PortfolioHandler {
	return &PortfolioHandler{responder: responder{log: log}, portfolioUC: portfolioUC}
}

// Portfolio returns the investor's positions across funds.
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioUC.GetInvestorPortfolio(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		h.fail(w, r, "investor_portfolio", err)
		return
	}

	writeData(w, http.StatusOK, dto.PortfolioFromDomain(portfolio))
}

// Overview returns platform-wide totals.
func (h *PortfolioHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.portfolioUC.GetPlatformOverview(r.Context())
	if err != nil {
		h.fail(w, r, "platform_overview", err)
		return
	}

	writeData(w, http.StatusOK, dto.OverviewFromDomain(overview))
}

package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
)

// StatisticsService defines the behavior needed by StatisticsHandler.
type StatisticsService interface {
	GetFundStatistics(ctx context.Context, fundID string) (domain.FundStatistics, error)
}

// StatisticsHandler serves derived fund statistics.
type StatisticsHandler struct {
	responder
	statsUC StatisticsService
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(statsUC StatisticsService, log zerolog.Logger) *StatisticsHandler {
	return &StatisticsHandler{responder: responder{log: log}, statsUC: statsUC}
}

// Get returns statistics for the fund. Unknown funds get zeroed defaults.
func (h *StatisticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUC.GetFundStatistics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "fund_statistics", err)
		return
	}

	writeData(w, http.StatusOK, dto.FundStatisticsFromDomain(stats))
}

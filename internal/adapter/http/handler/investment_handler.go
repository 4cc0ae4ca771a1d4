package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InvestmentService defines the ledger behavior needed by InvestmentHandler.
type InvestmentService interface {
	RecordInvestment(ctx context.Context, input usecase.RecordInvestmentInput) (*domain.Investment, error)
	GetFundInvestmentHistory(ctx context.Context, fundID string) ([]*domain.Investment, error)
	GetUserFundInvestmentHistory(ctx context.Context, fundID, investor string) ([]*domain.Investment, error)
}

// SummaryService computes per-investor summaries.
type SummaryService interface {
	GetUserInvestmentSummary(ctx context.Context, fundID, investor string) (*domain.InvestorSummary, error)
}

// ExportService renders history spreadsheets.
type ExportService interface {
	ExportInvestments(ctx context.Context, fundID, investor string) ([]byte, error)
}

// InvestmentHandler handles deposit and redeem requests.
type InvestmentHandler struct {
	responder
	investmentUC InvestmentService
	summaryUC    SummaryService
	exportUC     ExportService
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(
	investmentUC InvestmentService,
	summaryUC SummaryService,
	exportUC ExportService,
	log zerolog.Logger,
) *InvestmentHandler {
	return &InvestmentHandler{
		responder:    responder{log: log},
		investmentUC: investmentUC,
		summaryUC:    summaryUC,
		exportUC:     exportUC,
	}
}

// Record appends a deposit or redeem.
func (h *InvestmentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordInvestmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), msgInvalidBody)
		return
	}

	inv, err := h.investmentUC.RecordInvestment(r.Context(), req.ToUseCaseInput())
	if err != nil {
		h.fail(w, r, "record_investment", err)
		return
	}

	writeData(w, http.StatusCreated, dto.InvestmentFromDomain(inv))
}

// History lists the fund's records newest first, optionally for one investor.
func (h *InvestmentHandler) History(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "id")
	investor := r.URL.Query().Get("investor")

	var (
		records []*domain.Investment
		err     error
	)
	if investor != "" {
		records, err = h.investmentUC.GetUserFundInvestmentHistory(r.Context(), fundID, investor)
	} else {
		records, err = h.investmentUC.GetFundInvestmentHistory(r.Context(), fundID)
	}
	if err != nil {
		h.fail(w, r, "investment_history", err)
		return
	}

	writeData(w, http.StatusOK, dto.InvestmentsFromDomain(records))
}

// Summary returns the investor's position in the fund, or null data.
func (h *InvestmentHandler) Summary(w http.ResponseWriter, r *http.Request) {
	investor := r.URL.Query().Get("investor")
	if investor == "" {
		writeError(w, http.StatusBadRequest, "missing investor", msgMissingInvestor)
		return
	}

	summary, err := h.summaryUC.GetUserInvestmentSummary(r.Context(), chi.URLParam(r, "id"), investor)
	if err != nil {
		h.fail(w, r, "investor_summary", err)
		return
	}

	writeData(w, http.StatusOK, dto.InvestorSummaryFromDomain(summary))
}

// Export streams the history as an XLSX attachment.
func (h *InvestmentHandler) Export(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "id")

	data, err := h.exportUC.ExportInvestments(r.Context(), fundID, r.URL.Query().Get("investor"))
	if err != nil {
		h.fail(w, r, "export_investments", err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="fund-%s-investments.xlsx"`, fundID))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

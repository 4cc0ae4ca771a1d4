package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// SwapService defines the behavior needed by SwapHandler.
type SwapService interface {
	RecordSwap(ctx context.Context, input usecase.RecordSwapInput) (*domain.Swap, error)
	GetFundSwapHistory(ctx context.Context, fundID string) ([]*domain.Swap, error)
	GetUserSwapHistory(ctx context.Context, initiator string) ([]*domain.Swap, error)
}

// SwapHandler handles vault swap requests.
type SwapHandler struct {
	responder
	swapUC SwapService
}

// NewSwapHandler creates a new SwapHandler.
func NewSwapHandler(swapUC SwapService, log zerolog.Logger) *SwapHandler {
	return &SwapHandler{responder: responder{log: log}, swapUC: swapUC}
}

// Record appends a swap.
func (h *SwapHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordSwapRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), msgInvalidBody)
		return
	}

	swap, err := h.swapUC.RecordSwap(r.Context(), req.ToUseCaseInput())
	if err != nil {
		h.fail(w, r, "record_swap", err)
		return
	}

	writeData(w, http.StatusCreated, dto.SwapFromDomain(swap))
}

// ListByFund lists the fund's swaps newest first.
func (h *SwapHandler) ListByFund(w http.ResponseWriter, r *http.Request) {
	swaps, err := h.swapUC.GetFundSwapHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "fund_swaps", err)
		return
	}

	writeData(w, http.StatusOK, dto.SwapsFromDomain(swaps))
}

// ListByInitiator lists the swaps an address initiated across all funds.
func (h *SwapHandler) ListByInitiator(w http.ResponseWriter, r *http.Request) {
	initiator := r.URL.Query().Get("initiator")
	if initiator == "" {
		writeError(w, http.StatusBadRequest, "missing initiator", msgMissingInitiator)
		return
	}

	swaps, err := h.swapUC.GetUserSwapHistory(r.Context(), initiator)
	if err != nil {
		h.fail(w, r, "user_swaps", err)
		return
	}

	writeData(w, http.StatusOK, dto.SwapsFromDomain(swaps))
}

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

// FundService defines the behavior needed by FundHandler.
type FundService interface {
	CreateFund(ctx context.Context, input usecase.CreateFundInput) (*domain.Fund, error)
	GetFund(ctx context.Context, id string) (*domain.Fund, error)
	GetFundByVault(ctx context.Context, vault string) (*domain.Fund, error)
	ListFunds(ctx context.Context, filter usecase.FundFilter) ([]*domain.Fund, error)
	UpdateFundStatus(ctx context.Context, id, status string) (*domain.Fund, error)
}

// FundHandler handles fund registry requests.
type FundHandler struct {
	responder
	fundUC FundService
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(fundUC FundService, log zerolog.Logger) *FundHandler {
	return &FundHandler{responder: responder{log: log}, fundUC: fundUC}
}

// Create registers a fund.
func (h *FundHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFundRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), msgInvalidBody)
		return
	}

	fund, err := h.fundUC.CreateFund(r.Context(), req.ToUseCaseInput())
	if err != nil {
		h.fail(w, r, "create_fund", err)
		return
	}

	writeData(w, http.StatusCreated, dto.FundFromDomain(fund))
}

// List returns funds, narrowed by the vault, creator or search query parameters.
func (h *FundHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	funds, err := h.fundUC.ListFunds(r.Context(), usecase.FundFilter{
		Vault:   q.Get("vault"),
		Creator: q.Get("creator"),
		Search:  q.Get("search"),
	})
	if err != nil {
		h.fail(w, r, "list_funds", err)
		return
	}

	writeData(w, http.StatusOK, dto.FundsFromDomain(funds))
}

// Get returns one fund, or null data when it does not exist.
func (h *FundHandler) Get(w http.ResponseWriter, r *http.Request) {
	fund, err := h.fundUC.GetFund(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get_fund", err)
		return
	}

	writeData(w, http.StatusOK, dto.FundFromDomain(fund))
}

// GetByVault looks a fund up by its vault proxy address.
func (h *FundHandler) GetByVault(w http.ResponseWriter, r *http.Request) {
	fund, err := h.fundUC.GetFundByVault(r.Context(), chi.URLParam(r, "vault"))
	if err != nil {
		h.fail(w, r, "get_fund_by_vault", err)
		return
	}

	writeData(w, http.StatusOK, dto.FundFromDomain(fund))
}

// UpdateStatus changes the fund status.
func (h *FundHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateFundStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), msgInvalidBody)
		return
	}

	fund, err := h.fundUC.UpdateFundStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.fail(w, r, "update_fund_status", err)
		return
	}

	writeData(w, http.StatusOK, dto.FundFromDomain(fund))
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/logger"
)

// User-facing messages. The dashboard this API serves is localized in Traditional Chinese.
const (
	msgMissingFields    = "缺少必要欄位"
	msgInvalidType      = "type 必須是 deposit 或 redeem"
	msgInvalidNumber    = "數值欄位格式錯誤"
	msgInvalidFee       = "入場費必須介於 0 到 100 之間"
	msgInvalidStatus    = "status 必須是 active、paused 或 closed"
	msgFundNotFound     = "找不到指定的基金"
	msgDuplicateTx      = "此交易已被記錄"
	msgMissingInvestor  = "請指定 investor 參數"
	msgMissingInitiator = "請指定 initiator 參數"
	msgInvalidBody      = "請求格式錯誤"
	msgTryAgain         = "系統暫時無法處理請求，請稍後再試"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeData wraps data in the success envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dto.Envelope{Success: true, Data: data})
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Success: false,
		Error:   message,
		Message: details,
	})
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", domain.ErrValidation)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// mapDomainError maps domain errors to an HTTP status and a localized message.
func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInvestmentType):
		return http.StatusBadRequest, msgInvalidType
	case errors.Is(err, domain.ErrInvalidDecimal):
		return http.StatusBadRequest, msgInvalidNumber
	case errors.Is(err, domain.ErrInvalidFeeValue):
		return http.StatusBadRequest, msgInvalidFee
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, msgInvalidStatus
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, msgMissingFields
	case errors.Is(err, domain.ErrFundNotFound), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, msgFundNotFound
	case errors.Is(err, domain.ErrDuplicateTxHash):
		return http.StatusConflict, msgDuplicateTx
	case errors.Is(err, domain.ErrStorage):
		return http.StatusServiceUnavailable, msgTryAgain
	default:
		return http.StatusInternalServerError, msgTryAgain
	}
}

// responder turns use case errors into responses and logs the ones callers cannot fix.
type responder struct {
	log zerolog.Logger
}

func (rs responder) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, message := mapDomainError(err)

	if status >= http.StatusInternalServerError {
		l := logger.FromContext(r.Context(), rs.log)
		l.Error().Err(err).Str("op", op).Msg("request failed")
		writeError(w, status, http.StatusText(status), message)
		return
	}

	writeError(w, status, err.Error(), message)
}

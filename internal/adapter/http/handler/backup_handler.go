package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/usecase"
)

// BackupService defines the behavior needed by BackupHandler.
type BackupService interface {
	Backup(ctx context.Context) (string, error)
}

// BackupHandler triggers ledger snapshots.
type BackupHandler struct {
	responder
	backupUC BackupService
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupUC BackupService, log zerolog.Logger) *BackupHandler {
	return &BackupHandler{responder: responder{log: log}, backupUC: backupUC}
}

// Create uploads a snapshot and returns its object key.
func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	key, err := h.backupUC.Backup(r.Context())
	if errors.Is(err, usecase.ErrBackupDisabled) {
		writeError(w, http.StatusNotImplemented, err.Error(), "備份功能未啟用")
		return
	}
	if err != nil {
		h.fail(w, r, "backup", err)
		return
	}

	writeData(w, http.StatusCreated, dto.BackupResponse{Key: key})
}

package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/fundledger/internal/usecase"
	"github.com/iho/fundledger/internal/usecase/mocks"
)

func TestBackupUseCase_Backup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	objects := mocks.NewMockObjectStore(ctrl)
	f, _ := newTestFacade(t, usecase.FacadeConfig{Backups: objects, BackupPrefix: "snapshots/"})

	fund := createTestFund(t, f, "Test")
	recordTestInvestment(t, f, fund.ID, "0xA", "deposit", "100", "100")
	recordTestInvestment(t, f, fund.ID, "0xA", "redeem", "40", "40")
	if _, err := f.Swaps.RecordSwap(context.Background(), usecase.RecordSwapInput{
		FundID: fund.ID, FromToken: "USDC", ToToken: "WETH", FromAmount: "10", ToAmount: "0.01", TxHash: "0xs", Initiator: "0xM",
	}); err != nil {
		t.Fatalf("record swap: %v", err)
	}

	var uploaded []byte
	objects.EXPECT().
		Put(gomock.Any(), gomock.Any(), "application/json", gomock.Any()).
		DoAndReturn(func(ctx context.Context, key, contentType string, body []byte) error {
			uploaded = body
			return nil
		})

	key, err := f.Backups.Backup(context.Background())
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if !strings.HasPrefix(key, "snapshots/") || !strings.HasSuffix(key, ".json") {
		t.Errorf("unexpected key %q", key)
	}

	var snapshot usecase.Snapshot
	if err := json.Unmarshal(uploaded, &snapshot); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snapshot.Funds) != 1 || len(snapshot.Investments) != 2 || len(snapshot.Swaps) != 1 {
		t.Errorf("snapshot incomplete: %d funds, %d investments, %d swaps",
			len(snapshot.Funds), len(snapshot.Investments), len(snapshot.Swaps))
	}
}

func TestBackupUseCase_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("disabled", func(t *testing.T) {
		f, _ := newTestFacade(t, usecase.FacadeConfig{})
		if _, err := f.Backups.Backup(context.Background()); !errors.Is(err, usecase.ErrBackupDisabled) {
			t.Fatalf("expected disabled error, got %v", err)
		}
	})

	t.Run("upload failure", func(t *testing.T) {
		objects := mocks.NewMockObjectStore(ctrl)
		objects.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("access denied"))

		f, _ := newTestFacade(t, usecase.FacadeConfig{Backups: objects})
		if _, err := f.Backups.Backup(context.Background()); err == nil || !strings.Contains(err.Error(), "access denied") {
			t.Fatalf("expected upload error, got %v", err)
		}
	})
}

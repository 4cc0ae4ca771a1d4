package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/iho/fundledger/internal/adapter/http"
	"github.com/iho/fundledger/internal/usecase"
	"github.com/iho/fundledger/internal/usecase/mocks"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := mocks.NewMemoryStore()
	facade := usecase.NewFacade(store.Store(), usecase.FacadeConfig{
		IDGen:  &mocks.SequentialIDGenerator{},
		Logger: zerolog.Nop(),
	})

	srv := httptest.NewServer(httpAdapter.NewRouter(httpAdapter.HandlersFromFacade(facade, zerolog.Nop())))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--url", srv.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon...", truncate("longerstring", 6))
	assert.Equal(t, "基金...", truncate("基金管理平台", 5))
}

func TestCLIFundLifecycle(t *testing.T) {
	srv := newTestServer(t)

	out, err := runCLI(t, srv, "funds", "create",
		"--name", "Alpha Fund", "--symbol", "ALPHA", "--vault", "0xVault",
		"--comptroller", "0xComp", "--asset", "USDC", "--creator", "0xManager")
	require.NoError(t, err)

	var fund map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &fund))
	assert.Equal(t, "1", fund["id"])

	out, err = runCLI(t, srv, "investments", "record",
		"--fund", "1", "--investor", "0xA", "--type", "deposit",
		"--amount", "1000", "--shares", "1000", "--price", "1", "--tx-hash", "0x1")
	require.NoError(t, err, out)

	out, err = runCLI(t, srv, "stats", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"netAssets": "1000.00"`)

	out, err = runCLI(t, srv, "investments", "summary", "1", "--investor", "0xa")
	require.NoError(t, err)
	assert.Contains(t, out, `"currentShares": "1000.000000"`)

	out, err = runCLI(t, srv, "funds", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Alpha Fund")

	out, err = runCLI(t, srv, "funds", "status", "1", "paused")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "paused"`)

	out, err = runCLI(t, srv, "overview")
	require.NoError(t, err)
	assert.Contains(t, out, `"activeFunds": 0`)

	out, err = runCLI(t, srv, "portfolio", "0xA")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalFunds": 1`)
}

func TestCLIReportsAPIErrors(t *testing.T) {
	srv := newTestServer(t)

	_, err := runCLI(t, srv, "investments", "record",
		"--fund", "99", "--investor", "0xA", "--amount", "1", "--shares", "1", "--price", "1", "--tx-hash", "0x1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestCLIBackupWithoutBucketFails(t *testing.T) {
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("DATA_FILE", filepath.Join(t.TempDir(), "ledger.json"))
	t.Setenv("S3_BUCKET", "")

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"backup"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrBackupDisabled)
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/fundledger/internal/adapter/http/middleware"
	"github.com/iho/fundledger/internal/usecase"
	"github.com/iho/fundledger/internal/usecase/mocks"
)

func newTestRouter(t *testing.T, opts ...func(*RouterConfig)) http.Handler {
	t.Helper()

	store := mocks.NewMemoryStore()
	facade := usecase.NewFacade(store.Store(), usecase.FacadeConfig{
		IDGen:  &mocks.SequentialIDGenerator{},
		Logger: zerolog.Nop(),
	})

	cfg := HandlersFromFacade(facade, zerolog.Nop())
	for _, opt := range opts {
		opt(&cfg)
	}

	return NewRouter(cfg)
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func dataOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var env struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.True(t, env.Success, rec.Body.String())
	return env.Data
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewRouter_LedgerFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/funds", `{"fundName":"Alpha Fund","fundSymbol":"ALPHA","vaultProxy":"0xVault","comptrollerProxy":"0xComp","denominationAsset":"USDC","creator":"0xManager"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "1", dataOf(t, rec)["id"])

	rec = do(t, router, http.MethodPost, "/api/v1/investments", `{"fundId":"1","investorAddress":"0xA","type":"deposit","amount":"1000","shares":"1000","sharePrice":"1","txHash":"0x1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/v1/investments", `{"fundId":1,"investorAddress":"0xa","type":"redeem","amount":200,"shares":200,"sharePrice":1,"txHash":"0x2"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/v1/funds/1/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := dataOf(t, rec)
	assert.Equal(t, "1000.00", stats["totalDeposits"])
	assert.Equal(t, "200.00", stats["totalRedemptions"])
	assert.Equal(t, "800.00", stats["netAssets"])
	assert.Equal(t, "800.000000", stats["totalShares"])
	assert.Equal(t, "1.0000", stats["currentSharePrice"])
	assert.EqualValues(t, 1, stats["totalInvestors"])

	rec = do(t, router, http.MethodGet, "/api/v1/funds/1/investments/summary?investor=0xA", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := dataOf(t, rec)
	assert.Equal(t, "800.000000", summary["currentShares"])
	assert.Equal(t, "800.00", summary["currentValue"])

	rec = do(t, router, http.MethodGet, "/api/v1/funds/by-vault/0xVAULT", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", dataOf(t, rec)["id"])

	rec = do(t, router, http.MethodGet, "/api/v1/overview", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "800.00", dataOf(t, rec)["totalAum"])

	rec = do(t, router, http.MethodGet, "/api/v1/funds/1/investments/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"), "expected a zip container")
}

func TestNewRouter_ErrorMapping(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/investments", `{"fundId":"99","investorAddress":"0xA","type":"deposit","amount":"1","shares":"1","sharePrice":"1","txHash":"0x1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "找不到指定的基金")

	rec = do(t, router, http.MethodPost, "/api/v1/funds", `{"fundName":"Only a name"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/funds/99", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":null}`, rec.Body.String())
}

func TestNewRouter_ValidationMessages(t *testing.T) {
	router := newTestRouter(t)
	fund := `{"fundName":"Alpha","fundSymbol":"AF","vaultProxy":"0xV","comptrollerProxy":"0xC","creator":"0xM"`

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		message string
	}{
		{"fee above 100", http.MethodPost, "/api/v1/funds", fund + `,"entranceFeePercent":"150"}`, "入場費必須介於 0 到 100 之間"},
		{"fee not a number", http.MethodPost, "/api/v1/funds", fund + `,"entranceFeePercent":"ten"}`, "數值欄位格式錯誤"},
		{"unknown status", http.MethodPatch, "/api/v1/funds/1/status", `{"status":"frozen"}`, "status 必須是 active、paused 或 closed"},
		{"amount not a number", http.MethodPost, "/api/v1/investments", `{"fundId":"1","investorAddress":"0xA","type":"deposit","amount":"1,000","shares":"1","sharePrice":"1","txHash":"0x1"}`, "數值欄位格式錯誤"},
		{"missing field", http.MethodPost, "/api/v1/investments", `{"fundId":"1","investorAddress":"0xA","type":"deposit","amount":"1","shares":"1","sharePrice":"1"}`, "缺少必要欄位"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestNewRouter_InvestmentEchoesDecimalScale(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/funds", `{"fundName":"Alpha","fundSymbol":"AF","vaultProxy":"0xV","comptrollerProxy":"0xC","creator":"0xM","entranceFeePercent":"2.50"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "2.50", dataOf(t, rec)["entranceFeePercent"])

	rec = do(t, router, http.MethodPost, "/api/v1/investments", `{"fundId":"1","investorAddress":"0xA","type":"deposit","amount":"1.00","shares":"1.000","sharePrice":"1","txHash":"0x1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := dataOf(t, rec)
	assert.Equal(t, "1.00", data["amount"])
	assert.Equal(t, "1.000", data["shares"])
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	router := newTestRouter(t, func(cfg *RouterConfig) {
		cfg.RateLimiter = middleware.NewRateLimiter(1, 1, nil)
	})

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	require.Equal(t, http.StatusOK, rec1.Code)

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}

func (s *stubIdempotencyStore) Release(ctx context.Context, key string) error {
	return nil
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := newTestRouter(t, func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/funds", strings.NewReader(`{}`))
	req.Header.Set(middleware.IdempotencyKeyHeader, "key-123")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, store.checkCalled, "expected idempotency store to be used")
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := newTestRouter(t, func(cfg *RouterConfig) {
		cfg.Gatherer = reg
		cfg.HTTPMetrics = middleware.NewHTTPMetrics(reg)
	})

	do(t, router, http.MethodGet, "/api/v1/funds/7", "")

	rec := do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `path="/api/v1/funds/:id"`)
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := newTestRouter(t)

	chiRoutes, ok := router.(chi.Routes)
	require.True(t, ok, "router does not implement chi.Routes")

	expected := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/funds/"},
		{http.MethodGet, "/api/v1/funds/"},
		{http.MethodGet, "/api/v1/funds/{id}"},
		{http.MethodGet, "/api/v1/funds/by-vault/{vault}"},
		{http.MethodPatch, "/api/v1/funds/{id}/status"},
		{http.MethodGet, "/api/v1/funds/{id}/statistics"},
		{http.MethodGet, "/api/v1/funds/{id}/investments"},
		{http.MethodGet, "/api/v1/funds/{id}/investments/summary"},
		{http.MethodGet, "/api/v1/funds/{id}/investments/export"},
		{http.MethodGet, "/api/v1/funds/{id}/swaps"},
		{http.MethodPost, "/api/v1/investments"},
		{http.MethodPost, "/api/v1/swaps/"},
		{http.MethodGet, "/api/v1/swaps/"},
		{http.MethodGet, "/api/v1/investors/{address}/portfolio"},
		{http.MethodGet, "/api/v1/overview"},
		{http.MethodPost, "/api/v1/backups"},
	}

	registered := map[string]bool{}
	err := chi.Walk(chiRoutes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	for _, e := range expected {
		assert.True(t, registered[e.method+" "+e.path], "missing route %s %s", e.method, e.path)
	}
}

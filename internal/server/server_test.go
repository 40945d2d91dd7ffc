package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartfund/smartfund/internal/app"
	"github.com/smartfund/smartfund/internal/common"
	"github.com/smartfund/smartfund/internal/interfaces"
	"github.com/smartfund/smartfund/internal/models"
	"github.com/smartfund/smartfund/internal/services/advisor"
	"github.com/smartfund/smartfund/internal/services/portfolio"
	"github.com/smartfund/smartfund/internal/services/screener"
	"github.com/smartfund/smartfund/internal/storage"
)

// mockGeminiClient stands in for the AI gateway in handler tests.
type mockGeminiClient struct {
	lookup    *models.FundLookupResult
	lookupErr error
	quotes    []models.NavQuote
	quotesErr error
	recs      []models.FundRecommendation
	screenErr error
	reply     *models.AdvisorReply
	adviseErr error
}

func (m *mockGeminiClient) SearchFund(_ context.Context, _ string) (*models.FundLookupResult, error) {
	return m.lookup, m.lookupErr
}

func (m *mockGeminiClient) RefreshNAVs(_ context.Context, _ []models.Holding) ([]models.NavQuote, error) {
	return m.quotes, m.quotesErr
}

func (m *mockGeminiClient) ScreenFunds(_ context.Context, _ models.ScreenCriteria) ([]models.FundRecommendation, error) {
	return m.recs, m.screenErr
}

func (m *mockGeminiClient) Advise(_ context.Context, _ []models.ChatMessage, _ string, _ []models.HoldingSnapshot) (*models.AdvisorReply, error) {
	return m.reply, m.adviseErr
}

// newTestServer builds a server over real storage in a temp directory, with
// the given gateway client (nil means unconfigured).
func newTestServer(t *testing.T, gemini interfaces.GeminiClient) *Server {
	t.Helper()

	logger := common.NewSilentLogger()
	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = t.TempDir()

	storageManager, err := storage.NewManager(logger, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { storageManager.Close() })

	portfolioService := portfolio.NewService(storageManager, gemini, logger)

	a := &app.App{
		Config:           cfg,
		Logger:           logger,
		Storage:          storageManager,
		GeminiClient:     gemini,
		PortfolioService: portfolioService,
		ScreenerService:  screener.NewService(gemini, logger),
		AdvisorService:   advisor.NewService(gemini, portfolioService, logger),
		StartupTime:      time.Now(),
	}

	return NewServer(a)
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func doRequest(t *testing.T, s *Server, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func addHolding(t *testing.T, s *Server, h models.Holding) models.Holding {
	t.Helper()
	rec := doRequest(t, s, http.MethodPost, "/api/holdings", jsonBody(t, h))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Holding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
}

func TestVersionEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/version", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "version")
}

func TestConfigEndpoint_RedactsSecrets(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/config", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["gemini_configured"])
	assert.NotContains(t, rec.Body.String(), "api_key")
}

func TestHoldings_AddAndList(t *testing.T) {
	s := newTestServer(t, nil)

	created := addHolding(t, s, models.Holding{Code: "001234", Name: "Test Fund", Shares: 100, CostPrice: 1.50, CurrentNav: 1.65})
	assert.NotEmpty(t, created.ID)

	rec := doRequest(t, s, http.MethodGet, "/api/holdings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
}

func TestHoldings_AddRejectsInvalid(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/holdings",
		jsonBody(t, models.Holding{Code: "001234", Name: "Test Fund", Shares: 100, CostPrice: 0}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/holdings", bytes.NewBufferString("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHoldings_ListSorted(t *testing.T) {
	s := newTestServer(t, nil)

	addHolding(t, s, models.Holding{Code: "001", Name: "Small", Shares: 10, CostPrice: 1.0, CurrentNav: 1.0})   // mv 10
	addHolding(t, s, models.Holding{Code: "002", Name: "Large", Shares: 100, CostPrice: 1.0, CurrentNav: 1.0})  // mv 100
	addHolding(t, s, models.Holding{Code: "003", Name: "Medium", Shares: 50, CostPrice: 1.0, CurrentNav: 1.0})  // mv 50

	rec := doRequest(t, s, http.MethodGet, "/api/holdings?sort=marketValue", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Holdings []models.Holding `json:"holdings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Holdings, 3)
	// Direction defaults to descending.
	assert.Equal(t, "002", body.Holdings[0].Code)
	assert.Equal(t, "003", body.Holdings[1].Code)
	assert.Equal(t, "001", body.Holdings[2].Code)

	rec = doRequest(t, s, http.MethodGet, "/api/holdings?sort=marketValue&direction=asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "001", body.Holdings[0].Code)
}

func TestHoldings_ListRejectsUnknownSortKey(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/holdings?sort=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHoldings_Update(t *testing.T) {
	s := newTestServer(t, nil)
	created := addHolding(t, s, models.Holding{Code: "001234", Name: "Fund", Shares: 100, CostPrice: 1.5})

	rec := doRequest(t, s, http.MethodPatch, "/api/holdings/"+created.ID,
		jsonBody(t, map[string]interface{}{"shares": 250}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Holding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, float64(250), updated.Shares)
	assert.Equal(t, "001234", updated.Code)
}

func TestHoldings_UpdateUnknownIDIs404(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodPatch, "/api/holdings/missing",
		jsonBody(t, map[string]interface{}{"shares": 250}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHoldings_Remove(t *testing.T) {
	s := newTestServer(t, nil)
	created := addHolding(t, s, models.Holding{Code: "001234", Name: "Fund", Shares: 100, CostPrice: 1.5})

	rec := doRequest(t, s, http.MethodDelete, "/api/holdings/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["removed"])

	// Second delete of the same id is a 404.
	rec = doRequest(t, s, http.MethodDelete, "/api/holdings/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHoldings_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodPut, "/api/holdings", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPortfolioSummary(t *testing.T) {
	s := newTestServer(t, nil)
	addHolding(t, s, models.Holding{Code: "001234", Name: "Fund", Shares: 100, CostPrice: 1.50, CurrentNav: 1.65})

	rec := doRequest(t, s, http.MethodGet, "/api/portfolio/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.PortfolioStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.InDelta(t, 150, stats.TotalCost, 1e-9)
	assert.InDelta(t, 165, stats.TotalValue, 1e-9)
	assert.InDelta(t, 15, stats.TotalProfit, 1e-9)
	assert.InDelta(t, 10, stats.ProfitRate, 1e-9)
}

func TestPortfolioAllocation(t *testing.T) {
	s := newTestServer(t, nil)
	addHolding(t, s, models.Holding{Code: "001", Name: "A", Shares: 100, CostPrice: 1.0, CurrentNav: 1.0})
	addHolding(t, s, models.Holding{Code: "002", Name: "B", Shares: 300, CostPrice: 1.0, CurrentNav: 1.0})

	rec := doRequest(t, s, http.MethodGet, "/api/portfolio/allocation", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Allocation []models.AllocationSlice `json:"allocation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Allocation, 2)
	assert.InDelta(t, 25, body.Allocation[0].WeightPct, 1e-9)
	assert.InDelta(t, 75, body.Allocation[1].WeightPct, 1e-9)
}

func TestPortfolioRefresh_EmptyPortfolio(t *testing.T) {
	// No holdings: the refresh succeeds without touching the gateway even
	// when no client is configured.
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodPost, "/api/portfolio/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, float64(0), body["count"])
}

func TestPortfolioRefresh_AppliesQuotes(t *testing.T) {
	gemini := &mockGeminiClient{quotes: []models.NavQuote{{Code: "001234", Nav: 1.80}}}
	s := newTestServer(t, gemini)
	addHolding(t, s, models.Holding{Code: "001234", Name: "Fund", Shares: 100, CostPrice: 1.5, CurrentNav: 1.5})

	rec := doRequest(t, s, http.MethodPost, "/api/portfolio/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Holdings []models.Holding `json:"holdings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Holdings, 1)
	assert.Equal(t, 1.80, body.Holdings[0].CurrentNav)
}

func TestPortfolioRefresh_GatewayFailureIs502(t *testing.T) {
	gemini := &mockGeminiClient{quotesErr: errors.New("gateway unreachable")}
	s := newTestServer(t, gemini)
	addHolding(t, s, models.Holding{Code: "001234", Name: "Fund", Shares: 100, CostPrice: 1.5, CurrentNav: 1.5})

	rec := doRequest(t, s, http.MethodPost, "/api/portfolio/refresh", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// Stored state untouched.
	rec = doRequest(t, s, http.MethodGet, "/api/holdings", nil)
	var body struct {
		Holdings []models.Holding `json:"holdings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Holdings, 1)
	assert.Equal(t, 1.5, body.Holdings[0].CurrentNav)
}

func TestFundLookup(t *testing.T) {
	gemini := &mockGeminiClient{lookup: &models.FundLookupResult{
		Code: "001234", Name: "Example Fund", Nav: 1.65, Date: "2026-08-27",
	}}
	s := newTestServer(t, gemini)

	rec := doRequest(t, s, http.MethodGet, "/api/funds/lookup?q=example", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.FundLookupResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "001234", result.Code)
	assert.Equal(t, 1.65, result.Nav)
}

func TestFundLookup_MissingQueryIs400(t *testing.T) {
	s := newTestServer(t, &mockGeminiClient{})

	rec := doRequest(t, s, http.MethodGet, "/api/funds/lookup", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFundLookup_NoClientIs503(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/funds/lookup?q=example", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestFundLookup_NoMatchIs404(t *testing.T) {
	s := newTestServer(t, &mockGeminiClient{lookup: nil})

	rec := doRequest(t, s, http.MethodGet, "/api/funds/lookup?q=nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFundLookup_TransportFailureIs502(t *testing.T) {
	s := newTestServer(t, &mockGeminiClient{lookupErr: errors.New("gateway unreachable")})

	rec := doRequest(t, s, http.MethodGet, "/api/funds/lookup?q=example", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestFundScreen(t *testing.T) {
	gemini := &mockGeminiClient{recs: []models.FundRecommendation{
		{Code: "001234", Name: "Alpha Equity", Type: "股票型", Risk: "高", Reason: "tailwind"},
	}}
	s := newTestServer(t, gemini)

	rec := doRequest(t, s, http.MethodPost, "/api/funds/screen",
		jsonBody(t, models.ScreenCriteria{Type: "股票型", Risk: "高"}))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
}

func TestFundScreen_GatewayFailureIsEmpty200(t *testing.T) {
	gemini := &mockGeminiClient{screenErr: errors.New("gateway unreachable")}
	s := newTestServer(t, gemini)

	rec := doRequest(t, s, http.MethodPost, "/api/funds/screen",
		jsonBody(t, models.ScreenCriteria{}))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(0), body["count"])
}

func TestChat(t *testing.T) {
	gemini := &mockGeminiClient{reply: &models.AdvisorReply{
		Text:    "Consider diversifying. 📊",
		Sources: []string{"https://example.com/report"},
	}}
	s := newTestServer(t, gemini)

	rec := doRequest(t, s, http.MethodPost, "/api/chat",
		jsonBody(t, map[string]string{"message": "How is my portfolio?"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Message models.ChatMessage `json:"message"`
		Sources []string           `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, models.ChatRoleModel, body.Message.Role)
	assert.Equal(t, "Consider diversifying. 📊", body.Message.Text)
	assert.Equal(t, []string{"https://example.com/report"}, body.Sources)
}

func TestChat_EmptyMessageIs400(t *testing.T) {
	s := newTestServer(t, &mockGeminiClient{})

	rec := doRequest(t, s, http.MethodPost, "/api/chat",
		jsonBody(t, map[string]string{"message": "   "}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_GatewayFailureIs502(t *testing.T) {
	gemini := &mockGeminiClient{adviseErr: errors.New("gateway unreachable")}
	s := newTestServer(t, gemini)

	rec := doRequest(t, s, http.MethodPost, "/api/chat",
		jsonBody(t, map[string]string{"message": "hello"}))
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// A failed exchange leaves no trace in the history.
	rec = doRequest(t, s, http.MethodGet, "/api/chat/history", nil)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(0), body["count"])
}

func TestChatHistory_GetAndClear(t *testing.T) {
	gemini := &mockGeminiClient{reply: &models.AdvisorReply{Text: "ok"}}
	s := newTestServer(t, gemini)

	doRequest(t, s, http.MethodPost, "/api/chat", jsonBody(t, map[string]string{"message": "one"}))
	doRequest(t, s, http.MethodPost, "/api/chat", jsonBody(t, map[string]string{"message": "two"}))

	rec := doRequest(t, s, http.MethodGet, "/api/chat/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(4), body["count"])

	rec = doRequest(t, s, http.MethodDelete, "/api/chat/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/chat/history", nil)
	body = decodeBody(t, rec)
	assert.Equal(t, float64(0), body["count"])
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodOptions, "/api/health", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

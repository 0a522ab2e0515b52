package server

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepfinance-dev/deepfinance/internal/config"
	"github.com/deepfinance-dev/deepfinance/internal/logger"
	"github.com/deepfinance-dev/deepfinance/internal/store"
)

var testNow = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()

	writeCSV(t, dir, store.TransactionsFile, store.TransactionsHeader+"\n"+
		"t1,2025-07-10,Blue Bottle,POSTED,-6.50,USD,Sapphire,CREDIT,,Chase,,Coffee,Blue Bottle\n"+
		"t2,2025-07-01,Payroll,POSTED,3000,USD,Checking,BANK,checking,Chase,,Income,\n"+
		"t3,2025-06-10,Safeway,POSTED,-120,USD,Checking,BANK,checking,Chase,,Groceries,Safeway\n"+
		"t4,2025-05-10,Rent,POSTED,-1500,USD,Checking,BANK,checking,Chase,,Rent,\n")
	writeCSV(t, dir, store.CardBalancesFile, store.CardBalancesHeader+"\n"+
		"c1,Sapphire,-500,10%,2025-07-15,\n")
	writeCSV(t, dir, store.CashBalancesFile, store.AccountBalancesHeader+"\n"+
		"Checking,5000,Chase,1234,2025-07-15,\n")
	writeCSV(t, dir, store.InvestmentBalancesFile, store.AccountBalancesHeader+"\n"+
		"Brokerage,10000,Fidelity,5678,2025-07-15,\n")
	writeCSV(t, dir, store.InvestmentHistoryFile, store.InvestmentHistoryHeader+"\n"+
		"2025-05-01,\"$9,500\",9500,3M,0\n"+
		"2025-07-01,\"$10,000\",10000,3M,1\n")

	log := logger.NewWithWriter(&bytes.Buffer{})
	s := NewService(store.New(dir), config.Default(dir), log)
	s.now = func() time.Time { return testNow }
	s.rng = rand.New(rand.NewSource(1))
	return s, dir
}

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func get(t *testing.T, s *Service, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Router().ServeHTTP(w, req)

	var body map[string]any
	if strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestHandleTransactions(t *testing.T) {
	s, _ := newTestService(t)
	w, _ := get(t, s, "/api/transactions")
	require.Equal(t, http.StatusOK, w.Code)

	var txns []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txns))
	assert.Len(t, txns, 4)
	assert.Equal(t, "t1", txns[0]["transaction_id"])
}

func TestHandleSummary(t *testing.T) {
	s, _ := newTestService(t)
	w, body := get(t, s, "/api/summary")
	require.Equal(t, http.StatusOK, w.Code)

	summary := body["summary"].(map[string]any)
	// 5000 cash + 10000 investments - 500 card debt.
	assert.Equal(t, "14500", summary["net_worth"])
	assert.Equal(t, "500", summary["credit_card_debt"])
	assert.Equal(t, "6.5", summary["month_spending"])

	breakdown := body["breakdown"].([]any)
	assert.Len(t, breakdown, 3)
}

func TestHandleMonthly(t *testing.T) {
	s, _ := newTestService(t)
	w, _ := get(t, s, "/api/monthly?months=2")
	require.Equal(t, http.StatusOK, w.Code)

	var buckets []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &buckets))
	require.Len(t, buckets, 2)
	assert.Equal(t, "2025-06", buckets[0]["month"])
	assert.Equal(t, "2025-07", buckets[1]["month"])
}

func TestHandleCategories(t *testing.T) {
	s, _ := newTestService(t)
	w, body := get(t, s, "/api/categories?n=2")
	require.Equal(t, http.StatusOK, w.Code)

	top := body["top"].([]any)
	require.Len(t, top, 2)
	first := top[0].(map[string]any)
	assert.Equal(t, "Rent", first["category"])
}

func TestHandleCashFlow(t *testing.T) {
	s, _ := newTestService(t)
	w, body := get(t, s, "/api/cashflow?period=3M")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "cashflow")
	assert.Contains(t, body, "accounts")
	assert.Contains(t, body, "merchants")
}

func TestHandleVelocity(t *testing.T) {
	s, _ := newTestService(t)
	w, body := get(t, s, "/api/velocity")
	require.Equal(t, http.StatusOK, w.Code)

	daily := body["daily"].(map[string]any)
	assert.Equal(t, float64(2), daily["total_count"])
	assert.Len(t, body["weekly"].([]any), 7)
}

func TestHandleInvestmentHistory_Normalized(t *testing.T) {
	s, _ := newTestService(t)
	w, body := get(t, s, "/api/investment_history?period=3M")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "9500", body["start_value"])
	assert.Equal(t, "10000", body["end_value"])
	assert.Equal(t, true, body["is_positive"])
}

func TestHandleInsights(t *testing.T) {
	s, _ := newTestService(t)
	w, body := get(t, s, "/api/insights")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "spending_trend_pct")
	assert.Contains(t, body, "insights")
}

func TestHandleInsights_InsufficientData(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, store.TransactionsFile, store.TransactionsHeader+"\n")
	log := logger.NewWithWriter(&bytes.Buffer{})
	s := NewService(store.New(dir), config.Default(dir), log)
	s.now = func() time.Time { return testNow }

	w, _ := get(t, s, "/api/insights")
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestHandleSearch(t *testing.T) {
	s, _ := newTestService(t)
	w, body := get(t, s, "/api/search?q=coffee")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])

	w, body = get(t, s, "/api/search?transaction-type=expenses&account_name=Checking")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["count"])
}

func TestHandleSetToken(t *testing.T) {
	s, dir := newTestService(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/set-token",
		strings.NewReader(`{"token":"tok-123"}`))
	req.Header.Set("Content-Type", "application/json")
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	tok, err := store.New(dir).LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
}

func TestHandleSetToken_Missing(t *testing.T) {
	s, _ := newTestService(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/set-token", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRefresh(t *testing.T) {
	s, dir := newTestService(t)

	// New data appears on disk; refresh picks it up.
	writeCSV(t, dir, store.TransactionsFile, store.TransactionsHeader+"\n"+
		"t9,2025-07-14,New,POSTED,-1,USD,Checking,BANK,,Chase,,Food,\n")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w2, _ := get(t, s, "/api/transactions")
	var txns []map[string]any
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &txns))
	require.Len(t, txns, 1)
	assert.Equal(t, "t9", txns[0]["transaction_id"])
}

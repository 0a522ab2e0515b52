package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/deepfinance-dev/deepfinance/internal/accounts"
	"github.com/deepfinance-dev/deepfinance/internal/analytics"
	"github.com/deepfinance-dev/deepfinance/internal/filter"
	"github.com/deepfinance-dev/deepfinance/internal/invest"
	"github.com/deepfinance-dev/deepfinance/internal/trend"
	"github.com/deepfinance-dev/deepfinance/internal/velocity"
)

// HandleTransactions returns the raw transaction list.
func (s *Service) HandleTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshot().Transactions)
}

// HandleCardBalances returns the raw card balance list.
func (s *Service) HandleCardBalances(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshot().CardBalances)
}

// HandleCashBalances returns the raw cash balance list.
func (s *Service) HandleCashBalances(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshot().CashBalances)
}

// HandleInvestmentBalances returns the raw investment balance list.
func (s *Service) HandleInvestmentBalances(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshot().InvestmentBalances)
}

// HandleInvestmentHistory returns portfolio history. With a period query
// parameter the matching slice is normalized for charting; without one the
// raw points are returned.
func (s *Service) HandleInvestmentHistory(c *gin.Context) {
	data := s.snapshot()
	if token := c.Query("period"); token != "" {
		c.JSON(http.StatusOK, invest.Normalize(data.InvestmentHistory, token))
		return
	}
	c.JSON(http.StatusOK, data.InvestmentHistory)
}

// HandleSummary returns the net worth and balance summary.
func (s *Service) HandleSummary(c *gin.Context) {
	data := s.snapshot()
	summary := accounts.Summarize(data.CardBalances, data.CashBalances,
		data.InvestmentBalances, data.Transactions, s.now())
	c.JSON(http.StatusOK, gin.H{
		"summary":   summary,
		"breakdown": accounts.TypeBreakdown(data.CardBalances, data.CashBalances, data.InvestmentBalances),
	})
}

// HandleMonthly returns the monthly income/spending rollup, optionally
// limited to the trailing N months via the months query parameter.
func (s *Service) HandleMonthly(c *gin.Context) {
	buckets := analytics.MonthlyIncomeSpending(s.snapshot().Transactions)
	if n := intQuery(c, "months", 0); n > 0 {
		buckets = analytics.LastN(buckets, n)
	}
	c.JSON(http.StatusOK, buckets)
}

// HandleCategories returns top categories and the per-category month
// summary. Query parameters: n, metric, start, end, categories
// (comma-separated).
func (s *Service) HandleCategories(c *gin.Context) {
	txns := s.snapshot().Transactions
	metric := analytics.Metric(c.DefaultQuery("metric", string(analytics.MetricSpending)))
	start := c.Query("start")
	end := c.Query("end")

	var cats []string
	if raw := c.Query("categories"); raw != "" {
		cats = strings.Split(raw, ",")
	}

	summary := analytics.SummarizeCategoryMonths(txns, analytics.CategoryMonthOptions{
		StartMonth: start,
		EndMonth:   end,
		Categories: cats,
		Metric:     metric,
	})
	c.JSON(http.StatusOK, gin.H{
		"top": analytics.TopCategories(txns, analytics.TopOptions{
			N:          intQuery(c, "n", 0),
			Metric:     metric,
			StartMonth: start,
			EndMonth:   end,
		}),
		"summary":     summary,
		"annotations": analytics.DetectPatternChanges(summary),
	})
}

// HandleCashFlow returns the windowed monthly cash flow series.
func (s *Service) HandleCashFlow(c *gin.Context) {
	token := c.DefaultQuery("period", s.cfg.Dashboard.DefaultPeriod)
	data := s.snapshot()
	now := s.now()
	c.JSON(http.StatusOK, gin.H{
		"cashflow":  analytics.CashFlowByMonth(data.Transactions, now, token),
		"accounts":  analytics.AccountActivity(data.Transactions, now, token),
		"merchants": analytics.TopMerchants(data.Transactions, now, token, intQuery(c, "merchants", 0)),
	})
}

// HandleVelocity returns transaction velocity stats and spending pattern
// series. Query parameters: window (days), granularity, category.
func (s *Service) HandleVelocity(c *gin.Context) {
	txns := s.snapshot().Transactions
	now := s.now()
	window := intQuery(c, "window", s.cfg.Dashboard.VelocityWindow)
	c.JSON(http.StatusOK, gin.H{
		"daily":  velocity.Daily(txns, now, window),
		"weekly": velocity.WeeklyPattern(txns, now, window),
		"patterns": velocity.SpendingPatterns(txns, now,
			c.DefaultQuery("granularity", velocity.GranularityDaily), c.Query("category")),
	})
}

// HandleInsights returns the predictive summary. With fewer than two months
// of recent data there is nothing to project, reported as 202.
func (s *Service) HandleInsights(c *gin.Context) {
	summary, ok := trend.Predict(s.snapshot().Transactions, s.now(), s.rng)
	if !ok {
		c.JSON(http.StatusAccepted, gin.H{"message": "not enough recent data for insights"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// HandleSearch filters the transaction list. The free-text query comes from
// q; filter fields arrive as repeated query parameters named after the
// field.
func (s *Service) HandleSearch(c *gin.Context) {
	var pairs []filter.Pair
	for _, field := range []string{
		filter.FieldType, filter.FieldDateRange, filter.FieldAccount,
		filter.FieldAccountTy, filter.FieldCategory, filter.FieldStatus,
	} {
		for _, v := range c.QueryArray(field) {
			pairs = append(pairs, filter.Pair{Field: field, Value: v})
		}
	}

	state := filter.FromPairs(pairs)
	results := filter.Apply(s.snapshot().Transactions, state, c.Query("q"), s.now())
	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}

// setTokenRequest is the /api/set-token payload. The token is opaque.
type setTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// HandleSetToken persists the scraper access token.
func (s *Service) HandleSetToken(c *gin.Context) {
	var req setTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}
	if err := s.store.SaveToken(req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.log.Info().Msg("access token updated")
	c.JSON(http.StatusOK, gin.H{"message": "token saved"})
}

// HandleRefresh reloads all datasets from disk.
func (s *Service) HandleRefresh(c *gin.Context) {
	if err := s.Refresh(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.mu.RLock()
	last := s.lastRefresh
	s.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{"message": "data reloaded", "lastRefresh": last})
}

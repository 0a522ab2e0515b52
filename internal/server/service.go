// Package server exposes the dashboard data and derived views over HTTP.
// Handlers are thin: they parse query parameters and delegate to the
// aggregation packages.
package server

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deepfinance-dev/deepfinance/internal/config"
	"github.com/deepfinance-dev/deepfinance/internal/store"
)

// Service handles dashboard API operations over one data store.
type Service struct {
	store *store.Store
	cfg   *config.Config
	log   zerolog.Logger

	mu          sync.RWMutex
	data        store.Data
	lastRefresh time.Time

	// now and rng are swappable for tests.
	now func() time.Time
	rng *rand.Rand
}

// NewService creates a dashboard service and loads the store. A load failure
// is logged but not fatal: the scraper may simply not have run yet, and
// /api/refresh picks up data once it exists.
func NewService(st *store.Store, cfg *config.Config, log zerolog.Logger) *Service {
	s := &Service{
		store: st,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := s.Refresh(); err != nil {
		log.Warn().Err(err).Msg("initial data load failed")
	}
	return s
}

// Refresh reloads every dataset from the store directory.
func (s *Service) Refresh() error {
	data, err := s.store.LoadAll()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.lastRefresh = time.Now()
	s.mu.Unlock()

	s.log.Info().
		Int("transactions", len(data.Transactions)).
		Int("card_balances", len(data.CardBalances)).
		Int("cash_balances", len(data.CashBalances)).
		Int("investment_balances", len(data.InvestmentBalances)).
		Int("history_points", len(data.InvestmentHistory)).
		Msg("data loaded")
	return nil
}

// snapshot returns the current data under the read lock.
func (s *Service) snapshot() store.Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Router builds the gin engine with all API routes registered.
func (s *Service) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/transactions", s.HandleTransactions)
	api.GET("/card_balances", s.HandleCardBalances)
	api.GET("/cash_balances", s.HandleCashBalances)
	api.GET("/investment_balances", s.HandleInvestmentBalances)
	api.GET("/investment_history", s.HandleInvestmentHistory)
	api.GET("/summary", s.HandleSummary)
	api.GET("/monthly", s.HandleMonthly)
	api.GET("/categories", s.HandleCategories)
	api.GET("/cashflow", s.HandleCashFlow)
	api.GET("/velocity", s.HandleVelocity)
	api.GET("/insights", s.HandleInsights)
	api.GET("/search", s.HandleSearch)
	api.POST("/set-token", s.HandleSetToken)
	api.POST("/refresh", s.HandleRefresh)
	return r
}

// intQuery parses an integer query parameter, falling back on def.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

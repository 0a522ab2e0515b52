// Package store reads and writes the scraped CSV data directory. A missing
// file means the scraper has not produced that dataset yet, so reads are
// fail-soft: absent files yield empty slices, not errors.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deepfinance-dev/deepfinance/internal/model"
)

// Data file names inside the store directory.
const (
	TransactionsFile       = "transactions.csv"
	CardBalancesFile       = "card_balances.csv"
	CashBalancesFile       = "cash_balances.csv"
	InvestmentBalancesFile = "investment_balances.csv"
	InvestmentHistoryFile  = "investment_history.csv"
	tokenFile              = "access_token"
)

// Store is a handle on one scraped data directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory need not exist yet.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Data is everything the store holds, loaded in one pass.
type Data struct {
	Transactions       []model.Transaction
	CardBalances       []model.AccountBalance
	CashBalances       []model.AccountBalance
	InvestmentBalances []model.AccountBalance
	InvestmentHistory  []model.InvestmentPoint
}

// LoadAll reads every dataset. Files the scraper has not written yet load as
// empty slices.
func (s *Store) LoadAll() (Data, error) {
	var data Data
	var err error

	if data.Transactions, err = s.Transactions(); err != nil {
		return Data{}, err
	}
	if data.CardBalances, err = s.CardBalances(); err != nil {
		return Data{}, err
	}
	if data.CashBalances, err = s.CashBalances(); err != nil {
		return Data{}, err
	}
	if data.InvestmentBalances, err = s.InvestmentBalances(); err != nil {
		return Data{}, err
	}
	if data.InvestmentHistory, err = s.InvestmentHistory(); err != nil {
		return Data{}, err
	}
	return data, nil
}

// Transactions loads transactions.csv.
func (s *Store) Transactions() ([]model.Transaction, error) {
	f, err := s.open(TransactionsFile)
	if err != nil || f == nil {
		return nil, err
	}
	defer f.Close()
	return ReadTransactions(f)
}

// CardBalances loads card_balances.csv.
func (s *Store) CardBalances() ([]model.AccountBalance, error) {
	f, err := s.open(CardBalancesFile)
	if err != nil || f == nil {
		return nil, err
	}
	defer f.Close()
	return ReadCardBalances(f)
}

// CashBalances loads cash_balances.csv.
func (s *Store) CashBalances() ([]model.AccountBalance, error) {
	f, err := s.open(CashBalancesFile)
	if err != nil || f == nil {
		return nil, err
	}
	defer f.Close()
	return ReadAccountBalances(f)
}

// InvestmentBalances loads investment_balances.csv.
func (s *Store) InvestmentBalances() ([]model.AccountBalance, error) {
	f, err := s.open(InvestmentBalancesFile)
	if err != nil || f == nil {
		return nil, err
	}
	defer f.Close()
	return ReadAccountBalances(f)
}

// InvestmentHistory loads investment_history.csv.
func (s *Store) InvestmentHistory() ([]model.InvestmentPoint, error) {
	f, err := s.open(InvestmentHistoryFile)
	if err != nil || f == nil {
		return nil, err
	}
	defer f.Close()
	return ReadInvestmentHistory(f)
}

// SaveToken persists the scraper's access token. The token is opaque: it is
// stored and handed back verbatim.
func (s *Store) SaveToken(token string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	path := filepath.Join(s.dir, tokenFile)
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	return nil
}

// LoadToken returns the persisted access token, or "" when none is saved.
func (s *Store) LoadToken() (string, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// open returns the named data file, or (nil, nil) when it does not exist.
func (s *Store) open(name string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	return f, nil
}

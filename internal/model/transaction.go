package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryOther is the bucket for transactions without a category.
const CategoryOther = "Other"

// StatusPending marks transactions not yet reflected in a settled balance.
const StatusPending = "PENDING"

// Account type values as reported by the upstream feed.
const (
	AccountTypeBank   = "BANK"
	AccountTypeCredit = "CREDIT"
)

// Transaction is one scraped transaction record. Sign is the sole
// income/spending discriminator: positive = inflow, negative = outflow.
type Transaction struct {
	TransactionID   string          `json:"transaction_id"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	Amount          decimal.Decimal `json:"amount_value"`
	Currency        string          `json:"amount_currency,omitempty"`
	AccountName     string          `json:"account_name"`
	AccountType     string          `json:"account_type"`
	AccountSubtype  string          `json:"account_subtype,omitempty"`
	AccountProvider string          `json:"account_provider,omitempty"`
	AccountDisplay  string          `json:"account_display,omitempty"`
	Category        string          `json:"category_name"`
	Merchant        string          `json:"merchant_name,omitempty"`
}

// CategoryOrOther returns the category name, substituting "Other" when absent.
func (t Transaction) CategoryOrOther() string {
	if t.Category == "" {
		return CategoryOther
	}
	return t.Category
}

// IsTransfer reports whether the transaction carries the transfer category,
// which never counts as real income or spending.
func (t Transaction) IsTransfer() bool {
	return strings.EqualFold(t.CategoryOrOther(), "transfer")
}

// Key returns a list/dedup identity: the upstream transaction ID when present,
// else the description. The fallback is not guaranteed unique.
func (t Transaction) Key() string {
	if t.TransactionID != "" {
		return t.TransactionID
	}
	return t.Description
}

package model

import "github.com/shopspring/decimal"

// AccountBalance is one scraped balance snapshot. Card accounts populate
// CardName, cash and investment accounts populate AccountName.
type AccountBalance struct {
	AccountID     string          `json:"account_id,omitempty"`
	CardName      string          `json:"card_name,omitempty"`
	AccountName   string          `json:"account_name,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	CreditUsage   string          `json:"credit_usage,omitempty"`
	Institution   string          `json:"institution,omitempty"`
	AccountNumber string          `json:"account_number,omitempty"`
	LastUpdated   string          `json:"last_updated,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
}

// DisplayName returns the card name if set, otherwise the account name.
func (b AccountBalance) DisplayName() string {
	if b.CardName != "" {
		return b.CardName
	}
	return b.AccountName
}

package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/deepfinance-dev/deepfinance/internal/model"
	"github.com/deepfinance-dev/deepfinance/internal/money"
)

// TransactionsHeader is the CSV header for transactions.csv.
const TransactionsHeader = "transaction_id,date,description,status,amount_value,amount_currency,account_name,account_type,account_subtype,account_provider,account_display,category_name,merchant_name"

const (
	txnNumFields   = 13
	colTxnID       = 0
	colTxnDate     = 1
	colTxnDesc     = 2
	colTxnStatus   = 3
	colTxnAmount   = 4
	colTxnCurrency = 5
	colTxnAcctName = 6
	colTxnAcctType = 7
	colTxnAcctSub  = 8
	colTxnProvider = 9
	colTxnDisplay  = 10
	colTxnCategory = 11
	colTxnMerchant = 12
)

// ReadTransactions reads all transactions from a transactions.csv reader.
// Amounts and dates go through the money parsers, so malformed cells become
// zero values rather than errors.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	records, err := readRows(r, txnNumFields, "transactions")
	if err != nil {
		return nil, err
	}

	var txns []model.Transaction
	for _, rec := range records {
		txns = append(txns, UnmarshalTransaction(rec))
	}
	return txns, nil
}

// WriteTransactions writes transactions to a transactions.csv writer
// (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TransactionsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row ([]string).
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, txnNumFields)
	row[colTxnID] = t.TransactionID
	if !t.Date.IsZero() {
		row[colTxnDate] = t.Date.Format("2006-01-02")
	}
	row[colTxnDesc] = t.Description
	row[colTxnStatus] = t.Status
	row[colTxnAmount] = t.Amount.String()
	row[colTxnCurrency] = t.Currency
	row[colTxnAcctName] = t.AccountName
	row[colTxnAcctType] = t.AccountType
	row[colTxnAcctSub] = t.AccountSubtype
	row[colTxnProvider] = t.AccountProvider
	row[colTxnDisplay] = t.AccountDisplay
	row[colTxnCategory] = t.Category
	row[colTxnMerchant] = t.Merchant
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) model.Transaction {
	return model.Transaction{
		TransactionID:   record[colTxnID],
		Date:            money.ParseDate(record[colTxnDate]),
		Description:     record[colTxnDesc],
		Status:          record[colTxnStatus],
		Amount:          money.ParseAmount(record[colTxnAmount]),
		Currency:        record[colTxnCurrency],
		AccountName:     record[colTxnAcctName],
		AccountType:     record[colTxnAcctType],
		AccountSubtype:  record[colTxnAcctSub],
		AccountProvider: record[colTxnProvider],
		AccountDisplay:  record[colTxnDisplay],
		Category:        record[colTxnCategory],
		Merchant:        record[colTxnMerchant],
	}
}

// CardBalancesHeader is the CSV header for card_balances.csv.
const CardBalancesHeader = "account_id,card_name,balance,credit_usage,last_updated,image_url"

const (
	cardNumFields  = 6
	colCardAcctID  = 0
	colCardName    = 1
	colCardBalance = 2
	colCardUsage   = 3
	colCardUpdated = 4
	colCardImage   = 5
)

// ReadCardBalances reads all card balances from a card_balances.csv reader.
func ReadCardBalances(r io.Reader) ([]model.AccountBalance, error) {
	records, err := readRows(r, cardNumFields, "card balances")
	if err != nil {
		return nil, err
	}

	var balances []model.AccountBalance
	for _, rec := range records {
		balances = append(balances, model.AccountBalance{
			AccountID:   rec[colCardAcctID],
			CardName:    rec[colCardName],
			Balance:     money.ParseAmount(rec[colCardBalance]),
			CreditUsage: rec[colCardUsage],
			LastUpdated: rec[colCardUpdated],
			ImageURL:    rec[colCardImage],
		})
	}
	return balances, nil
}

// WriteCardBalances writes card balances to a card_balances.csv writer
// (including header).
func WriteCardBalances(w io.Writer, balances []model.AccountBalance) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(CardBalancesHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, b := range balances {
		row := make([]string, cardNumFields)
		row[colCardAcctID] = b.AccountID
		row[colCardName] = b.CardName
		row[colCardBalance] = b.Balance.String()
		row[colCardUsage] = b.CreditUsage
		row[colCardUpdated] = b.LastUpdated
		row[colCardImage] = b.ImageURL
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AccountBalancesHeader is the CSV header for cash_balances.csv and
// investment_balances.csv, which share a shape. The institution column is
// the bank for cash accounts and the broker for investment accounts.
const AccountBalancesHeader = "account_name,balance,institution,account_number,last_updated,image_url"

const (
	acctNumFields  = 6
	colAcctName    = 0
	colAcctBalance = 1
	colAcctInst    = 2
	colAcctNumber  = 3
	colAcctUpdated = 4
	colAcctImage   = 5
)

// ReadAccountBalances reads cash or investment balances from a reader.
func ReadAccountBalances(r io.Reader) ([]model.AccountBalance, error) {
	records, err := readRows(r, acctNumFields, "account balances")
	if err != nil {
		return nil, err
	}

	var balances []model.AccountBalance
	for _, rec := range records {
		balances = append(balances, model.AccountBalance{
			AccountName:   rec[colAcctName],
			Balance:       money.ParseAmount(rec[colAcctBalance]),
			Institution:   rec[colAcctInst],
			AccountNumber: rec[colAcctNumber],
			LastUpdated:   rec[colAcctUpdated],
			ImageURL:      rec[colAcctImage],
		})
	}
	return balances, nil
}

// WriteAccountBalances writes cash or investment balances to a writer
// (including header).
func WriteAccountBalances(w io.Writer, balances []model.AccountBalance) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(AccountBalancesHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, b := range balances {
		row := make([]string, acctNumFields)
		row[colAcctName] = b.AccountName
		row[colAcctBalance] = b.Balance.String()
		row[colAcctInst] = b.Institution
		row[colAcctNumber] = b.AccountNumber
		row[colAcctUpdated] = b.LastUpdated
		row[colAcctImage] = b.ImageURL
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// InvestmentHistoryHeader is the CSV header for investment_history.csv.
const InvestmentHistoryHeader = "date,value,raw_value,period,data_point_index"

const (
	histNumFields = 5
	colHistDate   = 0
	colHistValue  = 1
	colHistRaw    = 2
	colHistPeriod = 3
	colHistIndex  = 4
)

// ReadInvestmentHistory reads all history points from an
// investment_history.csv reader.
func ReadInvestmentHistory(r io.Reader) ([]model.InvestmentPoint, error) {
	records, err := readRows(r, histNumFields, "investment history")
	if err != nil {
		return nil, err
	}

	var points []model.InvestmentPoint
	for _, rec := range records {
		index, _ := strconv.Atoi(rec[colHistIndex])
		points = append(points, model.InvestmentPoint{
			Date:     money.ParseDate(rec[colHistDate]),
			Display:  rec[colHistValue],
			RawValue: money.ParseAmount(rec[colHistRaw]),
			Period:   rec[colHistPeriod],
			Index:    index,
		})
	}
	return points, nil
}

// WriteInvestmentHistory writes history points to an
// investment_history.csv writer (including header).
func WriteInvestmentHistory(w io.Writer, points []model.InvestmentPoint) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(InvestmentHistoryHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, p := range points {
		row := make([]string, histNumFields)
		if !p.Date.IsZero() {
			row[colHistDate] = p.Date.Format("2006-01-02")
		}
		row[colHistValue] = p.Display
		row[colHistRaw] = p.RawValue.String()
		row[colHistPeriod] = p.Period
		row[colHistIndex] = strconv.Itoa(p.Index)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// readRows reads and validates a CSV stream, returning data rows with the
// header stripped.
func readRows(r io.Reader, numFields int, what string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", what, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// Package filter implements the transaction search: a toggleable filter
// state plus a staged evaluator over the transaction list.
package filter

import (
	"strings"
	"time"

	"github.com/deepfinance-dev/deepfinance/internal/model"
	"github.com/deepfinance-dev/deepfinance/internal/period"
)

// Filterable fields. DateRange is single-select; every other field is a
// multi-select membership test.
const (
	FieldType      = "transaction-type"
	FieldDateRange = "date-range"
	FieldAccount   = "account_name"
	FieldAccountTy = "account_type"
	FieldCategory  = "category_name"
	FieldStatus    = "status"
)

// Transaction-type values.
const (
	TypeExpenses = "expenses"
	TypeIncome   = "income"
)

// State maps a field to its active values. An absent field imposes no
// constraint. The zero value is ready to use via Toggle.
type State map[string][]string

// Clone returns an independent copy of the state.
func (s State) Clone() State {
	out := make(State, len(s))
	for field, values := range s {
		out[field] = append([]string(nil), values...)
	}
	return out
}

// Active reports whether any filter value is set.
func (s State) Active() bool {
	return len(s) > 0
}

// Has reports whether value is active for field.
func (s State) Has(field, value string) bool {
	for _, v := range s[field] {
		if v == value {
			return true
		}
	}
	return false
}

// Toggle flips value on field and returns the updated state. Multi-select
// fields accumulate values; toggling an active value removes it, and the
// field disappears once its last value is removed. The date-range field is
// single-select: toggling a different value replaces the current one.
func Toggle(s State, field, value string) State {
	if s == nil {
		s = make(State)
	}

	if field == FieldDateRange {
		if s.Has(field, value) {
			delete(s, field)
		} else {
			s[field] = []string{value}
		}
		return s
	}

	values := s[field]
	for i, v := range values {
		if v == value {
			values = append(values[:i], values[i+1:]...)
			if len(values) == 0 {
				delete(s, field)
			} else {
				s[field] = values
			}
			return s
		}
	}
	s[field] = append(values, value)
	return s
}

// Clear removes every active filter.
func Clear(s State) State {
	for field := range s {
		delete(s, field)
	}
	return s
}

// Pair is one active (field, value) entry, used to rebuild a state.
type Pair struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Pairs flattens the state into (field, value) entries, fields sorted by
// their declaration order above and values in insertion order.
func (s State) Pairs() []Pair {
	var out []Pair
	for _, field := range []string{FieldType, FieldDateRange, FieldAccount, FieldAccountTy, FieldCategory, FieldStatus} {
		for _, v := range s[field] {
			out = append(out, Pair{Field: field, Value: v})
		}
	}
	return out
}

// FromPairs rebuilds a state by toggling each pair in order.
func FromPairs(pairs []Pair) State {
	s := make(State)
	for _, p := range pairs {
		s = Toggle(s, p.Field, p.Value)
	}
	return s
}

// Apply evaluates the filter state and free-text query against txns,
// preserving input order. Stages run in sequence: transaction type, date
// range, multi-select memberships, then the text query. Selecting both
// expense and income types matches everything, like selecting neither.
func Apply(txns []model.Transaction, s State, query string, now time.Time) []model.Transaction {
	out := txns
	out = applyType(out, s)
	out = applyDateRange(out, s, now)
	out = applyMembership(out, s, FieldAccount, func(t model.Transaction) string { return t.AccountName })
	out = applyMembership(out, s, FieldAccountTy, func(t model.Transaction) string { return t.AccountType })
	out = applyMembership(out, s, FieldCategory, func(t model.Transaction) string { return t.Category })
	out = applyMembership(out, s, FieldStatus, func(t model.Transaction) string { return t.Status })
	out = applyQuery(out, query)
	return out
}

func applyType(txns []model.Transaction, s State) []model.Transaction {
	expenses := s.Has(FieldType, TypeExpenses)
	income := s.Has(FieldType, TypeIncome)
	if expenses == income {
		return txns
	}
	out := txns[:0:0]
	for _, t := range txns {
		if expenses && t.Amount.IsNegative() {
			out = append(out, t)
		}
		if income && t.Amount.IsPositive() {
			out = append(out, t)
		}
	}
	return out
}

func applyDateRange(txns []model.Transaction, s State, now time.Time) []model.Transaction {
	values := s[FieldDateRange]
	if len(values) == 0 {
		return txns
	}
	start, ok := period.SearchStart(now, values[0])
	if !ok {
		return txns
	}
	out := txns[:0:0]
	for _, t := range txns {
		if !t.Date.IsZero() && !t.Date.Before(start) {
			out = append(out, t)
		}
	}
	return out
}

func applyMembership(txns []model.Transaction, s State, field string, get func(model.Transaction) string) []model.Transaction {
	values := s[field]
	if len(values) == 0 {
		return txns
	}
	active := make(map[string]bool, len(values))
	for _, v := range values {
		active[v] = true
	}
	out := txns[:0:0]
	for _, t := range txns {
		if active[get(t)] {
			out = append(out, t)
		}
	}
	return out
}

func applyQuery(txns []model.Transaction, query string) []model.Transaction {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return txns
	}
	out := txns[:0:0]
	for _, t := range txns {
		if strings.Contains(strings.ToLower(t.Description), q) ||
			strings.Contains(strings.ToLower(t.Category), q) ||
			strings.Contains(strings.ToLower(t.Merchant), q) {
			out = append(out, t)
		}
	}
	return out
}

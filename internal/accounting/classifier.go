// Package accounting holds the pure bookkeeping rules shared by every
// report: which side an account type normally carries its balance on, how
// a signed balance is derived from debit and credit totals, and how the
// counter party of a journal line is named.
package accounting

import "github.com/shopspring/decimal"

// AccountType is one of the five account classes.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// AccountTypes lists every account type in statement order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Side is the normal balance side of an account.
type Side string

const (
	Debit  Side = "debit"
	Credit Side = "credit"
)

// Counter-party labels used in ledger and cash-book rows.
const (
	SundryLabel = "諸口"
	ErrorLabel  = "取引エラー"
)

// NormalSide returns Debit for asset and expense accounts and Credit for
// everything else.
func NormalSide(t AccountType) Side {
	if t == Asset || t == Expense {
		return Debit
	}
	return Credit
}

// SignedTotal returns the balance of an account in its natural sign:
// debits minus credits for debit-normal accounts, credits minus debits
// otherwise.
func SignedTotal(debitSum, creditSum decimal.Decimal, t AccountType) decimal.Decimal {
	if NormalSide(t) == Debit {
		return debitSum.Sub(creditSum)
	}
	return creditSum.Sub(debitSum)
}

// CounterPartyName names the other side of a journal line. One distinct
// account yields its name, several yield SundryLabel, none yields
// ErrorLabel.
func CounterPartyName(names []string) string {
	distinct := make(map[string]struct{}, len(names))
	var first string
	for _, n := range names {
		if _, ok := distinct[n]; !ok {
			if len(distinct) == 0 {
				first = n
			}
			distinct[n] = struct{}{}
		}
	}
	switch len(distinct) {
	case 0:
		return ErrorLabel
	case 1:
		return first
	default:
		return SundryLabel
	}
}

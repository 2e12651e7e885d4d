package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalSide(t *testing.T) {
	tests := map[AccountType]Side{
		Asset:     Debit,
		Expense:   Debit,
		Liability: Credit,
		Equity:    Credit,
		Revenue:   Credit,
	}
	for typ, want := range tests {
		assert.Equal(t, want, NormalSide(typ), "normal side of %s", typ)
	}
}

func TestSignedTotal(t *testing.T) {
	d := decimal.RequireFromString

	tests := []struct {
		name   string
		debit  string
		credit string
		typ    AccountType
		want   string
	}{
		{"asset with surplus debits", "1000", "400", Asset, "600"},
		{"asset overdrawn", "100", "250", Asset, "-150"},
		{"expense", "300.50", "0", Expense, "300.5"},
		{"revenue", "0", "15000", Revenue, "15000"},
		{"liability reduced", "500", "200", Liability, "-300"},
		{"equity", "0", "0", Equity, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SignedTotal(d(tt.debit), d(tt.credit), tt.typ)
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestCounterPartyName(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"single account", []string{"Cash"}, "Cash"},
		{"same account on two lines", []string{"Cash", "Cash"}, "Cash"},
		{"several accounts", []string{"Cash", "Accounts Payable"}, SundryLabel},
		{"no lines", nil, ErrorLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CounterPartyName(tt.names))
		})
	}
}

func TestAccountTypeValid(t *testing.T) {
	for _, typ := range AccountTypes {
		assert.True(t, typ.Valid())
	}
	assert.False(t, AccountType("cash").Valid())
}

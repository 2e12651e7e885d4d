package services

import (
	"github.com/shopspring/decimal"

	"ledgerbook/internal/accounting"
	"ledgerbook/internal/period"
	"ledgerbook/internal/repository"
)

// statementService builds trial balances, balance sheets and profit and
// loss statements for fiscal years.
type statementService struct {
	balance          BalanceServicer
	fiscalStartMonth int
}

// NewStatementService creates a new StatementServicer. Fiscal years start
// on the first day of fiscalStartMonth.
func NewStatementService(repo repository.LedgerRepository, fiscalStartMonth int) StatementServicer {
	if fiscalStartMonth < 1 || fiscalStartMonth > 12 {
		fiscalStartMonth = period.DefaultFiscalStartMonth
	}
	return &statementService{balance: NewBalanceService(repo), fiscalStartMonth: fiscalStartMonth}
}

func (s *statementService) fiscalRange(year int) period.DayRange {
	return period.FiscalRange(year, s.fiscalStartMonth, 12)
}

// TrialBalance lists every account in its normal-side column. For balanced
// entries the two column totals are equal.
func (s *statementService) TrialBalance(year int) (*TrialBalance, error) {
	r := s.fiscalRange(year)
	totals, err := s.balance.CalcEachAccountTotals(r)
	if err != nil {
		return nil, err
	}

	tb := &TrialBalance{
		Year:        year,
		Range:       r,
		Debits:      []StatementLine{},
		Credits:     []StatementLine{},
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
	}
	for _, t := range totals {
		line := statementLine(t)
		if accounting.NormalSide(t.Account.Type) == accounting.Debit {
			tb.Debits = append(tb.Debits, line)
			tb.DebitTotal = tb.DebitTotal.Add(t.Total)
		} else {
			tb.Credits = append(tb.Credits, line)
			tb.CreditTotal = tb.CreditTotal.Add(t.Total)
		}
	}
	return tb, nil
}

// BalanceSheet compares assets with liabilities plus equity. A surplus of
// assets is reported as retained earnings, a shortfall as deficit.
func (s *statementService) BalanceSheet(year int) (*BalanceSheet, error) {
	r := s.fiscalRange(year)
	totals, err := s.balance.CalcEachAccountTotals(r, accounting.Asset, accounting.Liability, accounting.Equity)
	if err != nil {
		return nil, err
	}

	bs := &BalanceSheet{
		Year:             year,
		Range:            r,
		Assets:           []StatementLine{},
		Liabilities:      []StatementLine{},
		Equity:           []StatementLine{},
		AssetTotal:       decimal.Zero,
		LiabilityTotal:   decimal.Zero,
		EquityTotal:      decimal.Zero,
		RetainedEarnings: decimal.Zero,
		Deficit:          decimal.Zero,
	}
	for _, t := range totals {
		line := statementLine(t)
		switch t.Account.Type {
		case accounting.Asset:
			bs.Assets = append(bs.Assets, line)
			bs.AssetTotal = bs.AssetTotal.Add(t.Total)
		case accounting.Liability:
			bs.Liabilities = append(bs.Liabilities, line)
			bs.LiabilityTotal = bs.LiabilityTotal.Add(t.Total)
		case accounting.Equity:
			bs.Equity = append(bs.Equity, line)
			bs.EquityTotal = bs.EquityTotal.Add(t.Total)
		}
	}

	diff := bs.AssetTotal.Sub(bs.LiabilityTotal.Add(bs.EquityTotal))
	if diff.IsPositive() {
		bs.RetainedEarnings = diff
	} else {
		bs.Deficit = diff.Neg()
	}
	return bs, nil
}

// ProfitAndLoss compares expenses with revenue for the fiscal year.
func (s *statementService) ProfitAndLoss(year int) (*ProfitAndLoss, error) {
	r := s.fiscalRange(year)
	totals, err := s.balance.CalcEachAccountTotals(r, accounting.Revenue, accounting.Expense)
	if err != nil {
		return nil, err
	}

	pl := &ProfitAndLoss{
		Year:         year,
		Range:        r,
		Expenses:     []StatementLine{},
		Revenues:     []StatementLine{},
		ExpenseTotal: decimal.Zero,
		RevenueTotal: decimal.Zero,
		NetIncome:    decimal.Zero,
		NetLoss:      decimal.Zero,
	}
	for _, t := range totals {
		line := statementLine(t)
		if t.Account.Type == accounting.Expense {
			pl.Expenses = append(pl.Expenses, line)
			pl.ExpenseTotal = pl.ExpenseTotal.Add(t.Total)
		} else {
			pl.Revenues = append(pl.Revenues, line)
			pl.RevenueTotal = pl.RevenueTotal.Add(t.Total)
		}
	}

	net := pl.RevenueTotal.Sub(pl.ExpenseTotal)
	if net.IsPositive() {
		pl.NetIncome = net
	} else {
		pl.NetLoss = net.Neg()
	}
	return pl, nil
}

func statementLine(t AccountTotal) StatementLine {
	return StatementLine{
		AccountName: t.Account.Name,
		AccountType: string(t.Account.Type),
		Amount:      t.Total,
	}
}

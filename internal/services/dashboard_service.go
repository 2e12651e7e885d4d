package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/accounting"
	"ledgerbook/internal/period"
	"ledgerbook/internal/repository"
)

// TrendMonths is the length of the dashboard trend series.
const TrendMonths = 6

var hundred = decimal.NewFromInt(100)

// dashboardService derives month-by-month trend series from the ledger.
type dashboardService struct {
	repo    repository.LedgerRepository
	balance BalanceServicer
	now     func() time.Time
}

// NewDashboardService creates a new DashboardServicer. now supplies the
// current time; nil means time.Now.
func NewDashboardService(repo repository.LedgerRepository, now func() time.Time) DashboardServicer {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{repo: repo, balance: NewBalanceService(repo), now: now}
}

// MonthlySales is the revenue total of one month.
func (s *dashboardService) MonthlySales(ym period.YearMonth) (decimal.Decimal, error) {
	return s.balance.TotalByAccountType(accounting.Revenue, period.MonthRange(ym))
}

// MonthlyExpense is the expense total of one month.
func (s *dashboardService) MonthlyExpense(ym period.YearMonth) (decimal.Decimal, error) {
	return s.balance.TotalByAccountType(accounting.Expense, period.MonthRange(ym))
}

// MonthlyProfit is sales minus expenses for one month.
func (s *dashboardService) MonthlyProfit(ym period.YearMonth) (decimal.Decimal, error) {
	sales, err := s.MonthlySales(ym)
	if err != nil {
		return decimal.Zero, err
	}
	expense, err := s.MonthlyExpense(ym)
	if err != nil {
		return decimal.Zero, err
	}
	return sales.Sub(expense), nil
}

// RecentHalfYear evaluates fn for the current month and the five before
// it, oldest first.
func (s *dashboardService) RecentHalfYear(fn func(period.YearMonth) (decimal.Decimal, error)) ([]decimal.Decimal, error) {
	months := period.RecentMonths(s.now(), TrendMonths)
	series := make([]decimal.Decimal, 0, len(months))
	for _, ym := range months {
		v, err := fn(ym)
		if err != nil {
			return nil, err
		}
		series = append(series, v)
	}
	return series, nil
}

// CompanySalesLastMonth ranks companies by net revenue in the previous
// month: revenue credits minus revenue debits on entries tagged with the
// company, largest first.
func (s *dashboardService) CompanySalesLastMonth() ([]repository.CompanyAmount, error) {
	r := period.MonthRange(period.PreviousMonth(period.Of(s.now())))
	f := repository.LineFilter{AccountType: accounting.Revenue, From: &r.Start, To: &r.End}

	credits, err := s.repo.CreditsByCompany(f)
	if err != nil {
		return nil, err
	}
	debits, err := s.repo.DebitsByCompany(f)
	if err != nil {
		return nil, err
	}

	net := make(map[string]decimal.Decimal, len(credits))
	for _, c := range credits {
		net[c.CompanyName] = net[c.CompanyName].Add(c.Amount)
	}
	for _, d := range debits {
		net[d.CompanyName] = net[d.CompanyName].Sub(d.Amount)
	}

	sales := make([]repository.CompanyAmount, 0, len(net))
	for name, amount := range net {
		sales = append(sales, repository.CompanyAmount{CompanyName: name, Amount: amount})
	}
	sort.SliceStable(sales, func(i, j int) bool {
		if c := sales[i].Amount.Cmp(sales[j].Amount); c != 0 {
			return c > 0
		}
		return sales[i].CompanyName < sales[j].CompanyName
	})
	return sales, nil
}

// ExpenseBreakdownLastMonth returns every expense account's total for the
// previous month, largest first.
func (s *dashboardService) ExpenseBreakdownLastMonth() ([]AccountTotal, error) {
	r := period.MonthRange(period.PreviousMonth(period.Of(s.now())))
	totals, err := s.balance.CalcEachAccountTotals(r, accounting.Expense)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals, nil
}

// Dashboard assembles every series shown on the dashboard.
func (s *dashboardService) Dashboard() (*Dashboard, error) {
	months := period.RecentMonths(s.now(), TrendMonths)
	labels := make([]string, len(months))
	for i, ym := range months {
		labels[i] = ym.String()
	}

	sales, err := s.RecentHalfYear(s.MonthlySales)
	if err != nil {
		return nil, err
	}
	expenses, err := s.RecentHalfYear(s.MonthlyExpense)
	if err != nil {
		return nil, err
	}
	profits := make([]decimal.Decimal, len(sales))
	for i := range sales {
		profits[i] = sales[i].Sub(expenses[i])
	}

	companySales, err := s.CompanySalesLastMonth()
	if err != nil {
		return nil, err
	}
	breakdown, err := s.ExpenseBreakdownLastMonth()
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Labels:           labels,
		Sales:            sales,
		Expenses:         expenses,
		Profits:          profits,
		CompanySales:     companySales,
		Pareto:           BuildParetoChart(companySales),
		ExpenseBreakdown: breakdown,
	}, nil
}

// BuildParetoChart turns companies sorted by revenue into percentage and
// cumulative-percentage series, rounded to whole percents. A zero total
// yields zero percentages.
func BuildParetoChart(sales []repository.CompanyAmount) ParetoChart {
	chart := ParetoChart{
		Labels:                make([]string, 0, len(sales)),
		Amounts:               make([]decimal.Decimal, 0, len(sales)),
		Percentages:           make([]int, 0, len(sales)),
		CumulativePercentages: make([]int, 0, len(sales)),
	}

	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Amount)
	}

	cumulative := decimal.Zero
	for _, s := range sales {
		cumulative = cumulative.Add(s.Amount)
		chart.Labels = append(chart.Labels, s.CompanyName)
		chart.Amounts = append(chart.Amounts, s.Amount)
		if total.IsZero() {
			chart.Percentages = append(chart.Percentages, 0)
			chart.CumulativePercentages = append(chart.CumulativePercentages, 0)
			continue
		}
		chart.Percentages = append(chart.Percentages, percentOf(s.Amount, total))
		chart.CumulativePercentages = append(chart.CumulativePercentages, percentOf(cumulative, total))
	}
	return chart
}

func percentOf(part, total decimal.Decimal) int {
	return int(part.Mul(hundred).Div(total).Round(0).IntPart())
}

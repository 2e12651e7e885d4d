package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/accounting"
	"ledgerbook/internal/period"
	"ledgerbook/internal/repository"
	"ledgerbook/internal/testutil"
)

func fixedNow() time.Time {
	return time.Date(2025, 7, 15, 9, 30, 0, 0, time.UTC)
}

func TestDashboardMonthlyFigures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDashboardService(repository.NewLedgerRepository(db), fixedNow)
	cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
	sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)
	rent := testutil.CreateTestAccount(t, db, "支払家賃", accounting.Expense)

	testutil.PostSimpleEntry(t, db, testutil.Day(2025, 2, 1), cash, sales, "100")
	testutil.PostSimpleEntry(t, db, testutil.Day(2025, 7, 1), cash, sales, "700")
	testutil.PostSimpleEntry(t, db, testutil.Day(2025, 7, 31), rent, cash, "250")
	testutil.PostSimpleEntry(t, db, testutil.Day(2025, 1, 31), cash, sales, "9999")

	july := period.YearMonth{Year: 2025, Month: 7}

	t.Run("profit", func(t *testing.T) {
		profit, err := svc.MonthlyProfit(july)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, profit, "450", "July profit")
	})

	t.Run("recent_half_year", func(t *testing.T) {
		series, err := svc.RecentHalfYear(svc.MonthlySales)
		testutil.AssertNoError(t, err)
		if len(series) != TrendMonths {
			t.Fatalf("expected %d months, got %d", TrendMonths, len(series))
		}
		testutil.AssertDecimal(t, series[0], "100", "February sales")
		testutil.AssertDecimal(t, series[5], "700", "July sales")
		for i := 1; i < 5; i++ {
			testutil.AssertDecimal(t, series[i], "0", "quiet month sales")
		}
	})
}

func TestCompanySalesLastMonth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDashboardService(repository.NewLedgerRepository(db), fixedNow)
	receivable := testutil.CreateTestAccount(t, db, "売掛金", accounting.Asset)
	sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)
	acme := testutil.CreateTestCompany(t, db, "Acme")
	beta := testutil.CreateTestCompany(t, db, "Beta")

	testutil.PostSimpleEntry(t, db, testutil.Day(2025, 6, 3), receivable, sales, "300", testutil.WithCompany(acme.ID))
	testutil.PostSimpleEntry(t, db, testutil.Day(2025, 6, 20), sales, receivable, "50", testutil.WithCompany(acme.ID))
	testutil.PostSimpleEntry(t, db, testutil.Day(2025, 6, 30), receivable, sales, "500", testutil.WithCompany(beta.ID))
	testutil.PostSimpleEntry(t, db, testutil.Day(2025, 7, 1), receivable, sales, "10000", testutil.WithCompany(acme.ID))
	testutil.PostSimpleEntry(t, db, testutil.Day(2025, 6, 10), receivable, sales, "40")

	ranked, err := svc.CompanySalesLastMonth()
	testutil.AssertNoError(t, err)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(ranked))
	}
	if ranked[0].CompanyName != "Beta" || ranked[1].CompanyName != "Acme" {
		t.Errorf("expected Beta then Acme, got %s then %s", ranked[0].CompanyName, ranked[1].CompanyName)
	}
	testutil.AssertDecimal(t, ranked[1].Amount, "250", "Acme net sales")

	chart := BuildParetoChart(ranked)
	if chart.Percentages[0] != 67 || chart.Percentages[1] != 33 {
		t.Errorf("expected percentages [67 33], got %v", chart.Percentages)
	}
	if chart.CumulativePercentages[1] != 100 {
		t.Errorf("expected cumulative to end at 100, got %v", chart.CumulativePercentages)
	}
}

func TestBuildParetoChart(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		chart := BuildParetoChart(nil)
		if chart.Labels == nil || chart.Percentages == nil || chart.CumulativePercentages == nil {
			t.Error("expected non-nil empty series")
		}
		if len(chart.Labels) != 0 {
			t.Errorf("expected no labels, got %d", len(chart.Labels))
		}
	})

	t.Run("all_zero", func(t *testing.T) {
		chart := BuildParetoChart([]repository.CompanyAmount{
			{CompanyName: "A", Amount: decimal.Zero},
			{CompanyName: "B", Amount: decimal.Zero},
		})
		for i := range chart.Labels {
			if chart.Percentages[i] != 0 || chart.CumulativePercentages[i] != 0 {
				t.Errorf("expected zero percentages, got %d and %d", chart.Percentages[i], chart.CumulativePercentages[i])
			}
		}
	})

	t.Run("cumulative", func(t *testing.T) {
		chart := BuildParetoChart([]repository.CompanyAmount{
			{CompanyName: "A", Amount: testutil.Dec("500")},
			{CompanyName: "B", Amount: testutil.Dec("300")},
			{CompanyName: "C", Amount: testutil.Dec("200")},
		})
		want := []int{50, 80, 100}
		for i, w := range want {
			if chart.CumulativePercentages[i] != w {
				t.Errorf("cumulative[%d]: expected %d, got %d", i, w, chart.CumulativePercentages[i])
			}
		}
	})
}

func TestDashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDashboardService(repository.NewLedgerRepository(db), fixedNow)
	cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
	rent := testutil.CreateTestAccount(t, db, "支払家賃", accounting.Expense)
	supplies := testutil.CreateTestAccount(t, db, "消耗品費", accounting.Expense)

	testutil.PostSimpleEntry(t, db, testutil.Day(2025, 6, 1), supplies, cash, "200")
	testutil.PostSimpleEntry(t, db, testutil.Day(2025, 6, 25), rent, cash, "1000")

	dash, err := svc.Dashboard()
	testutil.AssertNoError(t, err)

	if len(dash.Labels) != TrendMonths || dash.Labels[0] != "2025-02" || dash.Labels[5] != "2025-07" {
		t.Errorf("expected labels 2025-02..2025-07, got %v", dash.Labels)
	}
	testutil.AssertDecimal(t, dash.Profits[4], "-1200", "June profit")
	if len(dash.ExpenseBreakdown) != 2 || dash.ExpenseBreakdown[0].Account.Name != "支払家賃" {
		t.Errorf("expected 支払家賃 to lead the expense breakdown, got %+v", dash.ExpenseBreakdown)
	}
	if dash.CompanySales == nil {
		t.Error("expected non-nil company sales")
	}
}

package services

import (
	"testing"

	"ledgerbook/internal/accounting"
	"ledgerbook/internal/models"
	"ledgerbook/internal/repository"
	"ledgerbook/internal/testutil"
)

func TestNewCashBook(t *testing.T) {
	t.Run("empty_account_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		_, err := NewCashBook(repository.NewLedgerRepository(db), "  ")
		testutil.AssertAppError(t, err, "CASHBOOK_MISCONFIGURED")
	})

	t.Run("books_from_config", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		books, err := NewCashBooks(repository.NewLedgerRepository(db), map[string]string{
			"cash":     "現金",
			"checking": "当座預金",
		})
		testutil.AssertNoError(t, err)
		if books["checking"].AccountName() != "当座預金" {
			t.Errorf("expected checking book on 当座預金, got %s", books["checking"].AccountName())
		}
	})

	t.Run("one_book_misconfigured", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		_, err := NewCashBooks(repository.NewLedgerRepository(db), map[string]string{
			"cash":       "現金",
			"petty_cash": "",
		})
		testutil.AssertAppError(t, err, "CASHBOOK_MISCONFIGURED")
	})
}

func TestCashBookMonthlyBalance(t *testing.T) {
	t.Run("month_boundaries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)
		rent := testutil.CreateTestAccount(t, db, "支払家賃", accounting.Expense)
		testutil.CreateTestInitialBalance(t, db, cash.ID, "5000", testutil.Day(2025, 1, 1))

		testutil.PostSimpleEntry(t, db, testutil.Day(2025, 6, 30), cash, sales, "1000")
		in := testutil.PostSimpleEntry(t, db, testutil.Day(2025, 7, 1), cash, sales, "500")
		out := testutil.PostSimpleEntry(t, db, testutil.Day(2025, 7, 31), rent, cash, "200")
		testutil.PostSimpleEntry(t, db, testutil.Day(2025, 8, 1), cash, sales, "999")

		book, err := NewCashBook(repository.NewLedgerRepository(db), "現金")
		testutil.AssertNoError(t, err)

		report, err := book.MonthlyBalance(2025, 7)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, report.BroughtIn, "6000", "brought forward")
		if len(report.Data) != 4 {
			t.Fatalf("expected 4 rows, got %d", len(report.Data))
		}

		first := report.Data[0]
		if first.Summary != BroughtForwardLabel || !first.Date.Equal(testutil.Day(2025, 7, 1)) {
			t.Errorf("expected brought-forward row on 2025-07-01, got %s on %s", first.Summary, first.Date)
		}
		testutil.AssertDecimal(t, first.Balance, "6000", "brought-forward balance")
		testutil.AssertDecimal(t, first.Income, "0", "brought-forward income")

		if report.Data[1].EntryID != in.ID {
			t.Errorf("expected the 7/1 entry second, got %s", report.Data[1].EntryID)
		}
		testutil.AssertDecimal(t, report.Data[1].Income, "500", "income")
		testutil.AssertDecimal(t, report.Data[1].Balance, "6500", "balance after income")
		if report.Data[1].Summary != "売上" {
			t.Errorf("expected summary 売上, got %s", report.Data[1].Summary)
		}

		if report.Data[2].EntryID != out.ID {
			t.Errorf("expected the 7/31 entry third, got %s", report.Data[2].EntryID)
		}
		testutil.AssertDecimal(t, report.Data[2].Expense, "200", "expense")
		testutil.AssertDecimal(t, report.Data[2].Balance, "6300", "balance after expense")
		if report.Data[2].CounterParty != "支払家賃" {
			t.Errorf("expected counter party 支払家賃, got %s", report.Data[2].CounterParty)
		}

		last := report.Data[3]
		if last.Summary != CarriedForwardLabel || !last.Date.Equal(testutil.Day(2025, 7, 31)) {
			t.Errorf("expected carried-forward row on 2025-07-31, got %s on %s", last.Summary, last.Date)
		}
		testutil.AssertDecimal(t, last.Expense, "6300", "carried-forward expense")
		testutil.AssertDecimal(t, last.Balance, "0", "carried-forward balance")
		testutil.AssertDecimal(t, report.EndingBalance, "6300", "ending balance")
	})

	t.Run("sundry_counter_party", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)
		receivable := testutil.CreateTestAccount(t, db, "売掛金", accounting.Asset)
		testutil.CreateTestInitialBalance(t, db, cash.ID, "0", testutil.Day(2025, 1, 1))

		testutil.PostTestEntry(t, db, testutil.Day(2025, 3, 5), "mixed",
			[]testutil.Line{{Account: cash, Amount: "150"}},
			[]testutil.Line{{Account: sales, Amount: "100"}, {Account: receivable, Amount: "50"}})

		book, _ := NewCashBook(repository.NewLedgerRepository(db), "現金")
		report, err := book.MonthlyBalance(2025, 3)
		testutil.AssertNoError(t, err)

		row := report.Data[1]
		if row.CounterParty != "諸口" {
			t.Errorf("expected counter party 諸口, got %s", row.CounterParty)
		}
		if row.Summary != "諸口" {
			t.Errorf("expected summary to be the counter party, got %s", row.Summary)
		}
		testutil.AssertDecimal(t, row.Income, "150", "income")
	})

	t.Run("without_initial_balance_starts_in_january", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		testutil.PostSimpleEntry(t, db, testutil.Day(2024, 12, 31), cash, sales, "999")
		testutil.PostSimpleEntry(t, db, testutil.Day(2025, 2, 10), cash, sales, "300")

		book, _ := NewCashBook(repository.NewLedgerRepository(db), "現金")
		report, err := book.MonthlyBalance(2025, 3)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, report.BroughtIn, "300", "brought forward")
		testutil.AssertDecimal(t, report.EndingBalance, "300", "ending balance")
		if len(report.Data) != 2 {
			t.Errorf("expected only the frame rows, got %d", len(report.Data))
		}
	})

	t.Run("missing_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		book, err := NewCashBook(repository.NewLedgerRepository(db), "現金")
		testutil.AssertNoError(t, err)

		report, err := book.MonthlyBalance(2025, 7)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
		if report == nil {
			t.Fatal("expected an empty report alongside the error")
		}
		if len(report.Data) != 0 {
			t.Errorf("expected no rows, got %d", len(report.Data))
		}
		testutil.AssertDecimal(t, report.EndingBalance, "0", "ending balance")
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAccount(t, db, "現金", accounting.Asset)

		book, _ := NewCashBook(repository.NewLedgerRepository(db), "現金")
		_, err := book.MonthlyBalance(2025, 13)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("reflects_corrections", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)
		testutil.CreateTestInitialBalance(t, db, cash.ID, "0", testutil.Day(2025, 1, 1))
		journal := NewJournalService(db)
		book, _ := NewCashBook(repository.NewLedgerRepository(db), "現金")

		entry, err := journal.CreateJournalEntry(JournalEntryInput{
			Date:    testutil.Day(2025, 4, 15),
			Debits:  []LineInput{line(cash, "10000")},
			Credits: []LineInput{line(sales, "10000")},
		})
		testutil.AssertNoError(t, err)

		for _, amount := range []string{"10000", "15000", "18000"} {
			if amount != "10000" {
				_, err := journal.UpdateJournalEntry(entry.ID, JournalEntryInput{
					Date:    testutil.Day(2025, 4, 15),
					Debits:  []LineInput{line(cash, amount)},
					Credits: []LineInput{line(sales, amount)},
				})
				testutil.AssertNoError(t, err)
			}
			report, err := book.MonthlyBalance(2025, 4)
			testutil.AssertNoError(t, err)
			testutil.AssertDecimal(t, report.EndingBalance, amount, "ending balance")
		}
	})

	t.Run("ignores_other_accounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cash := testutil.CreateTestAccount(t, db, "現金", accounting.Asset)
		bank := testutil.CreateTestAccount(t, db, "当座預金", accounting.Asset)
		sales := testutil.CreateTestAccount(t, db, "売上", accounting.Revenue)

		testutil.PostSimpleEntry(t, db, testutil.Day(2025, 4, 1), bank, sales, "700",
			testutil.WithEntryType(models.EntryTypeNormal))

		book, _ := NewCashBook(repository.NewLedgerRepository(db), cash.Name)
		report, err := book.MonthlyBalance(2025, 4)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, report.EndingBalance, "0", "ending balance")
	})
}

package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ledgerbook/internal/accounting"
	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/period"
	"ledgerbook/internal/repository"
)

// Labels of the synthetic first and last rows of a cash book month.
const (
	BroughtForwardLabel = "前月繰越"
	CarriedForwardLabel = "次月繰越"
)

// cashBook rolls one cash-like account forward month by month. Cash,
// checking and petty-cash books differ only in their target account.
type cashBook struct {
	repo        repository.LedgerRepository
	accountName string
	log         *zap.SugaredLogger
}

// NewCashBook creates a CashBookServicer for the named account. An empty
// name is a configuration error.
func NewCashBook(repo repository.LedgerRepository, accountName string) (CashBookServicer, error) {
	accountName = strings.TrimSpace(accountName)
	if accountName == "" {
		return nil, apperrors.ErrCashBookMisconfigured
	}
	return &cashBook{
		repo:        repo,
		accountName: accountName,
		log:         logger.Named("cashbook").With("account", accountName),
	}, nil
}

// NewCashBooks creates one cash book per configured key.
func NewCashBooks(repo repository.LedgerRepository, accounts map[string]string) (map[string]CashBookServicer, error) {
	keys := make([]string, 0, len(accounts))
	for key := range accounts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	books := make(map[string]CashBookServicer, len(accounts))
	for _, key := range keys {
		book, err := NewCashBook(repo, accounts[key])
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrCashBookMisconfigured,
				fmt.Sprintf("cash book %q has no target account", key))
		}
		books[key] = book
	}
	return books, nil
}

func (b *cashBook) AccountName() string {
	return b.accountName
}

// MonthlyBalance returns the month's rows framed by a brought-forward row
// and a carried-forward row. When the target account does not exist the
// report is empty with a zero ending balance and the lookup error is
// returned alongside it.
func (b *cashBook) MonthlyBalance(year, month int) (*CashBookReport, error) {
	ym := period.YearMonth{Year: year, Month: month}
	report := &CashBookReport{
		AccountName:   b.accountName,
		Year:          year,
		Month:         month,
		BroughtIn:     decimal.Zero,
		Data:          []CashBookRow{},
		EndingBalance: decimal.Zero,
	}
	if !ym.Valid() {
		return report, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	account, err := b.repo.AccountByName(b.accountName)
	if err != nil {
		return report, err
	}

	anchorBalance := decimal.Zero
	anchorStart := period.Date(year, 1, 1)
	ib, err := b.repo.InitialBalance(account.ID)
	if err != nil {
		return report, err
	}
	if ib != nil {
		anchorBalance = ib.Balance
		anchorStart = ib.StartDate
	} else {
		b.log.Warnw("opening balance not set, rolling forward from zero",
			"year", year, "anchor_start", anchorStart.Format("2006-01-02"))
	}

	monthRange := period.MonthRange(ym)
	prevEnd := monthRange.Start.AddDate(0, 0, -1)
	prior := repository.LineFilter{AccountID: account.ID, From: &anchorStart, To: &prevEnd}
	priorDebits, err := b.repo.SumDebits(prior)
	if err != nil {
		return report, err
	}
	priorCredits, err := b.repo.SumCredits(prior)
	if err != nil {
		return report, err
	}
	balance := anchorBalance.Add(priorDebits).Sub(priorCredits)
	report.BroughtIn = balance

	rows := []CashBookRow{{
		Date:    monthRange.Start,
		Summary: BroughtForwardLabel,
		Income:  decimal.Zero,
		Expense: decimal.Zero,
		Balance: balance,
	}}

	entries, err := b.repo.Entries(repository.EntryQuery{
		AccountID: account.ID,
		From:      &monthRange.Start,
		To:        &monthRange.End,
	})
	if err != nil {
		return report, err
	}

	for i := range entries {
		entry := &entries[i]
		split := splitEntry(entry, account.ID)
		counter := accounting.CounterPartyName(split.counterNames())

		row := CashBookRow{
			EntryID:      entry.ID,
			Date:         entry.Date,
			Summary:      counter,
			CounterParty: counter,
			Income:       decimal.Zero,
			Expense:      decimal.Zero,
		}
		if split.isDebit {
			row.Income = split.debitSum()
			balance = balance.Add(row.Income)
		} else {
			row.Expense = split.creditSum()
			balance = balance.Sub(row.Expense)
		}
		row.Balance = balance
		rows = append(rows, row)
	}

	rows = append(rows, CashBookRow{
		Date:    monthRange.End,
		Summary: CarriedForwardLabel,
		Income:  decimal.Zero,
		Expense: balance,
		Balance: decimal.Zero,
	})

	report.Data = rows
	report.EndingBalance = balance
	return report, nil
}

package services

import (
	"github.com/shopspring/decimal"

	"ledgerbook/internal/accounting"
	"ledgerbook/internal/models"
	"ledgerbook/internal/period"
	"ledgerbook/internal/repository"
)

// generalLedgerService builds the running-balance ledger of one account.
type generalLedgerService struct {
	repo repository.LedgerRepository
}

// NewGeneralLedgerService creates a new GeneralLedgerServicer.
func NewGeneralLedgerService(repo repository.LedgerRepository) GeneralLedgerServicer {
	return &generalLedgerService{repo: repo}
}

// GeneralLedgerRows returns one row per entry touching account, ordered by
// date then insertion order. A nil range covers the whole ledger.
//
// A row shows the amount of the first line on the account's side only. An
// entry that posts to the same account twice on one side is displayed with
// its first line.
func (s *generalLedgerService) GeneralLedgerRows(account *models.Account, r *period.DayRange) ([]LedgerRow, error) {
	q := repository.EntryQuery{AccountID: account.ID}
	if r != nil {
		q.From, q.To = &r.Start, &r.End
	}
	entries, err := s.repo.Entries(q)
	if err != nil {
		return nil, err
	}

	rows := make([]LedgerRow, 0, len(entries))
	balance := decimal.Zero
	for i := range entries {
		entry := &entries[i]
		split := splitEntry(entry, account.ID)

		row := LedgerRow{
			EntryID:      entry.ID,
			Date:         entry.Date,
			Summary:      entry.Summary,
			CounterParty: accounting.CounterPartyName(split.counterNames()),
			DebitAmount:  decimal.Zero,
			CreditAmount: decimal.Zero,
		}
		if split.isDebit {
			row.DebitAmount = split.targetDebits[0].Amount
			balance = balance.Add(row.DebitAmount)
		} else if len(split.targetCredits) > 0 {
			row.CreditAmount = split.targetCredits[0].Amount
			balance = balance.Sub(row.CreditAmount)
		}
		row.RunningBalance = balance
		rows = append(rows, row)
	}
	return rows, nil
}

// GeneralLedger resolves an account by name and builds its ledger for one
// month, or for all time when ym is nil.
func (s *generalLedgerService) GeneralLedger(accountName string, ym *period.YearMonth) (*GeneralLedger, error) {
	account, err := s.repo.AccountByName(accountName)
	if err != nil {
		return nil, err
	}

	var r *period.DayRange
	if ym != nil {
		mr := period.MonthRange(*ym)
		r = &mr
	}
	rows, err := s.GeneralLedgerRows(account, r)
	if err != nil {
		return nil, err
	}

	ledger := &GeneralLedger{
		Account:       *account,
		Range:         r,
		Rows:          rows,
		DebitTotal:    decimal.Zero,
		CreditTotal:   decimal.Zero,
		EndingBalance: decimal.Zero,
	}
	for _, row := range rows {
		ledger.DebitTotal = ledger.DebitTotal.Add(row.DebitAmount)
		ledger.CreditTotal = ledger.CreditTotal.Add(row.CreditAmount)
	}
	if n := len(rows); n > 0 {
		ledger.EndingBalance = rows[n-1].RunningBalance
	}
	return ledger, nil
}

// entrySplit partitions an entry's lines relative to a target account.
type entrySplit struct {
	isDebit       bool
	targetDebits  []models.Debit
	targetCredits []models.Credit
	otherDebits   []models.Debit
	otherCredits  []models.Credit
}

func splitEntry(entry *models.JournalEntry, accountID string) entrySplit {
	var s entrySplit
	for _, d := range entry.Debits {
		if d.AccountID == accountID {
			s.targetDebits = append(s.targetDebits, d)
		} else {
			s.otherDebits = append(s.otherDebits, d)
		}
	}
	for _, c := range entry.Credits {
		if c.AccountID == accountID {
			s.targetCredits = append(s.targetCredits, c)
		} else {
			s.otherCredits = append(s.otherCredits, c)
		}
	}
	s.isDebit = len(s.targetDebits) > 0
	return s
}

// counterNames lists the account names on the opposite side of the target.
func (s entrySplit) counterNames() []string {
	var names []string
	if s.isDebit {
		for _, c := range s.otherCredits {
			names = append(names, c.Account.Name)
		}
		return names
	}
	for _, d := range s.otherDebits {
		names = append(names, d.Account.Name)
	}
	return names
}

func (s entrySplit) debitSum() decimal.Decimal {
	total := decimal.Zero
	for _, d := range s.targetDebits {
		total = total.Add(d.Amount)
	}
	return total
}

func (s entrySplit) creditSum() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.targetCredits {
		total = total.Add(c.Amount)
	}
	return total
}

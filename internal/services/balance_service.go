package services

import (
	"time"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/accounting"
	"ledgerbook/internal/models"
	"ledgerbook/internal/period"
	"ledgerbook/internal/repository"
)

// balanceService computes signed account totals. Every call re-reads the
// store; nothing is cached, so a corrected entry is visible immediately.
type balanceService struct {
	repo repository.LedgerRepository
}

// NewBalanceService creates a new BalanceServicer.
func NewBalanceService(repo repository.LedgerRepository) BalanceServicer {
	return &balanceService{repo: repo}
}

// AccountTotal returns the signed total of one account over r, both ends
// inclusive.
func (s *balanceService) AccountTotal(account *models.Account, r period.DayRange) (decimal.Decimal, error) {
	return s.signedSum(repository.LineFilter{AccountID: account.ID, From: &r.Start, To: &r.End}, account.Type)
}

// TotalByAccountType returns the signed total over r of every account of
// the given type.
func (s *balanceService) TotalByAccountType(accountType accounting.AccountType, r period.DayRange) (decimal.Decimal, error) {
	return s.signedSum(repository.LineFilter{AccountType: accountType, From: &r.Start, To: &r.End}, accountType)
}

// BalanceAsOf returns an account's signed balance from the beginning of the
// ledger through asOf, optionally limited to entries tagged with a company.
func (s *balanceService) BalanceAsOf(account *models.Account, asOf time.Time, companyID *string) (decimal.Decimal, error) {
	asOf = period.Normalize(asOf)
	return s.signedSum(repository.LineFilter{AccountID: account.ID, To: &asOf, CompanyID: companyID}, account.Type)
}

// CalcEachAccountTotals returns the total of every account of the given
// types over r, in chart order. No types means all accounts.
func (s *balanceService) CalcEachAccountTotals(r period.DayRange, types ...accounting.AccountType) ([]AccountTotal, error) {
	accounts, err := s.repo.Accounts(types...)
	if err != nil {
		return nil, err
	}

	f := repository.LineFilter{From: &r.Start, To: &r.End}
	debits, err := s.repo.DebitsByAccount(f)
	if err != nil {
		return nil, err
	}
	credits, err := s.repo.CreditsByAccount(f)
	if err != nil {
		return nil, err
	}
	debitByID := indexAmounts(debits)
	creditByID := indexAmounts(credits)

	totals := make([]AccountTotal, 0, len(accounts))
	for _, account := range accounts {
		totals = append(totals, AccountTotal{
			Account: account,
			Total:   accounting.SignedTotal(debitByID[account.ID], creditByID[account.ID], account.Type),
		})
	}
	return totals, nil
}

func (s *balanceService) signedSum(f repository.LineFilter, accountType accounting.AccountType) (decimal.Decimal, error) {
	debit, err := s.repo.SumDebits(f)
	if err != nil {
		return decimal.Zero, err
	}
	credit, err := s.repo.SumCredits(f)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.SignedTotal(debit, credit, accountType), nil
}

func indexAmounts(rows []repository.AccountAmount) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		m[row.AccountID] = row.Amount
	}
	return m
}

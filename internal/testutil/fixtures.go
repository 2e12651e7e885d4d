package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ledgerbook/internal/accounting"
	"ledgerbook/internal/models"
	"ledgerbook/internal/period"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Dec parses a decimal literal, panicking on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Day is shorthand for a calendar day.
func Day(year, month, day int) time.Time {
	return period.Date(year, month, day)
}

// CreateTestAccount creates an account with the given name and type.
func CreateTestAccount(t *testing.T, db *gorm.DB, name string, accountType accounting.AccountType) *models.Account {
	t.Helper()

	account := &models.Account{Name: name, Type: accountType}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account %s: %v", name, err)
	}
	return account
}

// CreateTestAccountOfType creates an account with a unique generated name.
func CreateTestAccountOfType(t *testing.T, db *gorm.DB, accountType accounting.AccountType) *models.Account {
	t.Helper()
	return CreateTestAccount(t, db, fmt.Sprintf("Test %s %d", accountType, nextID()), accountType)
}

// CreateTestCompany creates a company with the given name.
func CreateTestCompany(t *testing.T, db *gorm.DB, name string) *models.Company {
	t.Helper()

	company := &models.Company{Name: name}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("failed to create test company: %v", err)
	}
	return company
}

// CreateTestFiscalPeriod creates an open fiscal period.
func CreateTestFiscalPeriod(t *testing.T, db *gorm.DB, start, end time.Time) *models.FiscalPeriod {
	t.Helper()

	fp := &models.FiscalPeriod{
		Name:      fmt.Sprintf("FY%d-%d", start.Year(), nextID()),
		StartDate: start,
		EndDate:   end,
	}
	if err := db.Create(fp).Error; err != nil {
		t.Fatalf("failed to create test fiscal period: %v", err)
	}
	return fp
}

// CreateTestInitialBalance records an opening balance for an account.
func CreateTestInitialBalance(t *testing.T, db *gorm.DB, accountID, balance string, start time.Time) *models.InitialBalance {
	t.Helper()

	ib := &models.InitialBalance{AccountID: accountID, Balance: Dec(balance), StartDate: start}
	if err := db.Create(ib).Error; err != nil {
		t.Fatalf("failed to create test initial balance: %v", err)
	}
	return ib
}

// Line is one side of a fixture journal entry.
type Line struct {
	Account *models.Account
	Amount  string
}

// EntryOption customises a fixture journal entry.
type EntryOption func(*models.JournalEntry)

// WithCompany tags the entry with a company.
func WithCompany(companyID string) EntryOption {
	return func(e *models.JournalEntry) { e.CompanyID = &companyID }
}

// WithEntryType sets the entry classification.
func WithEntryType(entryType models.EntryType) EntryOption {
	return func(e *models.JournalEntry) { e.EntryType = entryType }
}

// WithFiscalPeriod links the entry to a fiscal period.
func WithFiscalPeriod(periodID string) EntryOption {
	return func(e *models.JournalEntry) { e.FiscalPeriodID = &periodID }
}

// PostTestEntry writes a journal entry and its lines directly, bypassing
// validation. Lines are created in argument order.
func PostTestEntry(t *testing.T, db *gorm.DB, date time.Time, summary string, debits, credits []Line, opts ...EntryOption) *models.JournalEntry {
	t.Helper()

	entry := &models.JournalEntry{Date: date, Summary: summary, EntryType: models.EntryTypeNormal}
	for _, opt := range opts {
		opt(entry)
	}
	if err := db.Omit(clause.Associations).Create(entry).Error; err != nil {
		t.Fatalf("failed to create test journal entry: %v", err)
	}
	for _, l := range debits {
		d := models.Debit{JournalEntryID: entry.ID, AccountID: l.Account.ID, Amount: Dec(l.Amount)}
		if err := db.Omit(clause.Associations).Create(&d).Error; err != nil {
			t.Fatalf("failed to create test debit: %v", err)
		}
		entry.Debits = append(entry.Debits, d)
	}
	for _, l := range credits {
		c := models.Credit{JournalEntryID: entry.ID, AccountID: l.Account.ID, Amount: Dec(l.Amount)}
		if err := db.Omit(clause.Associations).Create(&c).Error; err != nil {
			t.Fatalf("failed to create test credit: %v", err)
		}
		entry.Credits = append(entry.Credits, c)
	}
	return entry
}

// PostSimpleEntry posts a one-debit, one-credit entry.
func PostSimpleEntry(t *testing.T, db *gorm.DB, date time.Time, debit, credit *models.Account, amount string, opts ...EntryOption) *models.JournalEntry {
	t.Helper()
	return PostTestEntry(t, db, date, "", []Line{{debit, amount}}, []Line{{credit, amount}}, opts...)
}

// CreateTestFixedAsset registers an active straight-line asset.
func CreateTestFixedAsset(t *testing.T, db *gorm.DB, accountID string, cost string, acquired time.Time, usefulLife int, residual string) *models.FixedAsset {
	t.Helper()

	asset := &models.FixedAsset{
		AssetNumber:     fmt.Sprintf("FA-%04d", nextID()),
		Name:            "Test Asset",
		AccountID:       accountID,
		AcquisitionDate: acquired,
		AcquisitionCost: Dec(cost),
		UsefulLife:      usefulLife,
		ResidualValue:   Dec(residual),
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test fixed asset: %v", err)
	}
	return asset
}

// CreateTestDepreciation records depreciation for an asset in a period.
func CreateTestDepreciation(t *testing.T, db *gorm.DB, assetID, periodID, amount string) *models.DepreciationHistory {
	t.Helper()

	h := &models.DepreciationHistory{FixedAssetID: assetID, FiscalPeriodID: periodID, Amount: Dec(amount)}
	if err := db.Omit(clause.Associations).Create(h).Error; err != nil {
		t.Fatalf("failed to create test depreciation history: %v", err)
	}
	return h
}

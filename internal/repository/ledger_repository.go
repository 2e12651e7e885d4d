// Package repository is the query side of the ledger store. Report
// services depend on the LedgerRepository interface so they can be fed any
// store; the GORM implementation serves both Postgres and SQLite.
package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ledgerbook/internal/accounting"
	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
)

// LineFilter narrows the debit or credit lines an aggregate runs over.
// Date bounds are inclusive; nil bounds are open.
type LineFilter struct {
	AccountID   string
	AccountType accounting.AccountType
	From        *time.Time
	To          *time.Time
	CompanyID   *string
	EntryTypes  []models.EntryType
}

// EntryQuery selects journal entries. AccountID limits the result to
// entries with at least one line on that account.
type EntryQuery struct {
	AccountID   string
	From        *time.Time
	To          *time.Time
	CompanyID   *string
	WithDetails bool
}

// AccountAmount is a per-account aggregate.
type AccountAmount struct {
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// CompanyAmount is a per-company aggregate.
type CompanyAmount struct {
	CompanyName string          `json:"company_name"`
	Amount      decimal.Decimal `json:"amount"`
}

// LedgerRepository is the read/write surface the ledger engine needs from
// storage.
type LedgerRepository interface {
	AccountByName(name string) (*models.Account, error)
	AccountByID(id string) (*models.Account, error)
	Accounts(types ...accounting.AccountType) ([]models.Account, error)
	AccountsByNames(names []string) ([]models.Account, error)

	SumDebits(f LineFilter) (decimal.Decimal, error)
	SumCredits(f LineFilter) (decimal.Decimal, error)
	DebitsByAccount(f LineFilter) ([]AccountAmount, error)
	CreditsByAccount(f LineFilter) ([]AccountAmount, error)
	DebitsByCompany(f LineFilter) ([]CompanyAmount, error)
	CreditsByCompany(f LineFilter) ([]CompanyAmount, error)

	Entries(q EntryQuery) ([]models.JournalEntry, error)
	JournalEntry(id string) (*models.JournalEntry, error)
	InitialBalance(accountID string) (*models.InitialBalance, error)

	FiscalPeriod(id string) (*models.FiscalPeriod, error)
	Company(id string) (*models.Company, error)
	ActiveFixedAssets(acquiredBy time.Time, companyID *string) ([]models.FixedAsset, error)
	DepreciationFor(assetID, periodID string) (*models.DepreciationHistory, error)
	DepreciationThrough(assetID string, periodEnd time.Time) (decimal.Decimal, error)
	CreateDepreciation(h *models.DepreciationHistory) error

	// Transaction runs fn against a repository bound to one database
	// transaction.
	Transaction(fn func(repo LedgerRepository) error) error
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a LedgerRepository over db.
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Transaction(fn func(repo LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}

func (r *ledgerRepository) AccountByName(name string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("name = ?", name).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrAccountNotFound, name+" not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

func (r *ledgerRepository) AccountByID(id string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

func (r *ledgerRepository) Accounts(types ...accounting.AccountType) ([]models.Account, error) {
	q := r.db.Model(&models.Account{})
	if len(types) > 0 {
		q = q.Where("type IN ?", types)
	}
	var accounts []models.Account
	if err := q.Order("type ASC, name ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

func (r *ledgerRepository) AccountsByNames(names []string) ([]models.Account, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var accounts []models.Account
	if err := r.db.Where("name IN ?", names).Order("name ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

func (r *ledgerRepository) SumDebits(f LineFilter) (decimal.Decimal, error) {
	return r.sumLines("debits", f)
}

func (r *ledgerRepository) SumCredits(f LineFilter) (decimal.Decimal, error) {
	return r.sumLines("credits", f)
}

func (r *ledgerRepository) DebitsByAccount(f LineFilter) ([]AccountAmount, error) {
	return r.linesByAccount("debits", f)
}

func (r *ledgerRepository) CreditsByAccount(f LineFilter) ([]AccountAmount, error) {
	return r.linesByAccount("credits", f)
}

func (r *ledgerRepository) DebitsByCompany(f LineFilter) ([]CompanyAmount, error) {
	return r.linesByCompany("debits", f)
}

func (r *ledgerRepository) CreditsByCompany(f LineFilter) ([]CompanyAmount, error) {
	return r.linesByCompany("credits", f)
}

// lines starts an aggregate over one line table joined to its entries.
func (r *ledgerRepository) lines(table string, f LineFilter) *gorm.DB {
	q := r.db.Table(table + " AS l").
		Joins("JOIN journal_entries je ON je.id = l.journal_entry_id")
	if f.AccountType != "" {
		q = q.Joins("JOIN accounts a ON a.id = l.account_id").Where("a.type = ?", f.AccountType)
	}
	if f.AccountID != "" {
		q = q.Where("l.account_id = ?", f.AccountID)
	}
	if f.From != nil {
		q = q.Where("je.date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("je.date <= ?", *f.To)
	}
	if f.CompanyID != nil {
		q = q.Where("je.company_id = ?", *f.CompanyID)
	}
	if len(f.EntryTypes) > 0 {
		q = q.Where("je.entry_type IN ?", f.EntryTypes)
	}
	return q
}

func (r *ledgerRepository) sumLines(table string, f LineFilter) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.lines(table, f).Select("COALESCE(SUM(l.amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	// SQLite sums NUMERIC columns as floats.
	return total.Round(2), nil
}

func (r *ledgerRepository) linesByAccount(table string, f LineFilter) ([]AccountAmount, error) {
	var rows []AccountAmount
	err := r.lines(table, f).
		Select("l.account_id AS account_id, COALESCE(SUM(l.amount), 0) AS amount").
		Group("l.account_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range rows {
		rows[i].Amount = rows[i].Amount.Round(2)
	}
	return rows, nil
}

func (r *ledgerRepository) linesByCompany(table string, f LineFilter) ([]CompanyAmount, error) {
	var rows []CompanyAmount
	err := r.lines(table, f).
		Joins("JOIN companies c ON c.id = je.company_id").
		Select("c.name AS company_name, COALESCE(SUM(l.amount), 0) AS amount").
		Group("c.name").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range rows {
		rows[i].Amount = rows[i].Amount.Round(2)
	}
	return rows, nil
}

// Entries returns matching journal entries with their lines and line
// accounts loaded, ordered by date and then by insertion order.
func (r *ledgerRepository) Entries(q EntryQuery) ([]models.JournalEntry, error) {
	db := r.db.Model(&models.JournalEntry{})
	if q.AccountID != "" {
		db = db.Where("(id IN (?) OR id IN (?))",
			r.db.Model(&models.Debit{}).Select("journal_entry_id").Where("account_id = ?", q.AccountID),
			r.db.Model(&models.Credit{}).Select("journal_entry_id").Where("account_id = ?", q.AccountID),
		)
	}
	if q.From != nil {
		db = db.Where("date >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("date <= ?", *q.To)
	}
	if q.CompanyID != nil {
		db = db.Where("company_id = ?", *q.CompanyID)
	}

	db = db.
		Preload("Debits", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Debits.Account").
		Preload("Credits", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Credits.Account").
		Preload("Company")
	if q.WithDetails {
		db = db.
			Preload("PurchaseDetails", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
			Preload("PurchaseDetails.Item")
	}

	var entries []models.JournalEntry
	if err := db.Order("date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

func (r *ledgerRepository) JournalEntry(id string) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := r.db.Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrJournalEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// InitialBalance returns the opening balance of an account, or nil when
// none has been recorded.
func (r *ledgerRepository) InitialBalance(accountID string) (*models.InitialBalance, error) {
	var ib models.InitialBalance
	if err := r.db.Where("account_id = ?", accountID).First(&ib).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &ib, nil
}

func (r *ledgerRepository) FiscalPeriod(id string) (*models.FiscalPeriod, error) {
	var fp models.FiscalPeriod
	if err := r.db.Where("id = ?", id).First(&fp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFiscalPeriodNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &fp, nil
}

func (r *ledgerRepository) Company(id string) (*models.Company, error) {
	var c models.Company
	if err := r.db.Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &c, nil
}

// ActiveFixedAssets returns active assets acquired on or before acquiredBy,
// optionally scoped to one company.
func (r *ledgerRepository) ActiveFixedAssets(acquiredBy time.Time, companyID *string) ([]models.FixedAsset, error) {
	q := r.db.Preload("Account").
		Where("status = ? AND acquisition_date <= ?", models.FixedAssetActive, acquiredBy)
	if companyID != nil {
		q = q.Where("company_id = ?", *companyID)
	}
	var assets []models.FixedAsset
	if err := q.Order("asset_number ASC").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// DepreciationFor returns the history row for (asset, period), or nil.
func (r *ledgerRepository) DepreciationFor(assetID, periodID string) (*models.DepreciationHistory, error) {
	var h models.DepreciationHistory
	err := r.db.Where("fixed_asset_id = ? AND fiscal_period_id = ?", assetID, periodID).First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &h, nil
}

// DepreciationThrough sums the recorded depreciation of an asset over every
// fiscal period ending on or before periodEnd.
func (r *ledgerRepository) DepreciationThrough(assetID string, periodEnd time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.Table("depreciation_histories AS h").
		Joins("JOIN fiscal_periods fp ON fp.id = h.fiscal_period_id").
		Where("h.fixed_asset_id = ? AND fp.end_date <= ?", assetID, periodEnd).
		Select("COALESCE(SUM(h.amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total.Round(2), nil
}

func (r *ledgerRepository) CreateDepreciation(h *models.DepreciationHistory) error {
	if err := r.db.Create(h).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

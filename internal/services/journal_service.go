package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/period"
	"ledgerbook/internal/repository"
)

// postingMu serialises every read-validate-write cycle in this process.
// Postgres transactions are additionally run serializable.
var postingMu sync.Mutex

// journalService handles journal entry business logic.
type journalService struct {
	db *gorm.DB
}

// NewJournalService creates a new JournalServicer.
func NewJournalService(db *gorm.DB) JournalServicer {
	return &journalService{db: db}
}

// CreateJournalEntry validates and stores a balanced entry with all its
// lines in one transaction. Nothing is written when validation fails.
func (s *journalService) CreateJournalEntry(input JournalEntryInput) (*models.JournalEntry, error) {
	if input.EntryType == "" {
		input.EntryType = models.EntryTypeNormal
	}
	if input.EntryType == models.EntryTypeAdjustment {
		return s.CreateAdjustmentEntry(input)
	}
	if input.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	return s.post("", input)
}

// CreateAdjustmentEntry stores a year-end adjustment. The entry is dated on
// the last day of its fiscal period, which must still be open.
func (s *journalService) CreateAdjustmentEntry(input JournalEntryInput) (*models.JournalEntry, error) {
	if input.FiscalPeriodID == nil || *input.FiscalPeriodID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "fiscal period is required for adjustment entries")
	}
	input.EntryType = models.EntryTypeAdjustment
	return s.post("", input)
}

// UpdateJournalEntry replaces the header and every line of an existing
// entry. Reports read the corrected amounts on their next call.
func (s *journalService) UpdateJournalEntry(id string, input JournalEntryInput) (*models.JournalEntry, error) {
	if id == "" {
		return nil, apperrors.ErrJournalEntryNotFound
	}
	if input.EntryType == "" {
		input.EntryType = models.EntryTypeNormal
	}
	if input.EntryType != models.EntryTypeAdjustment && input.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	return s.post(id, input)
}

// DeleteJournalEntry removes an entry with its lines and purchase details.
// Depreciation histories and fixed assets that reference it are unlinked.
func (s *journalService) DeleteJournalEntry(id string) error {
	postingMu.Lock()
	defer postingMu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.JournalEntry
		if err := tx.Where("id = ?", id).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrJournalEntryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&models.DepreciationHistory{}).
			Where("journal_entry_id = ?", id).
			Update("journal_entry_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.FixedAsset{}).
			Where("acquisition_journal_entry_id = ?", id).
			Update("acquisition_journal_entry_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := deleteLines(tx, id); err != nil {
			return err
		}
		if err := tx.Delete(&entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	}, s.txOptions()...)
}

// GetJournalEntry loads one entry with its lines.
func (s *journalService) GetJournalEntry(id string) (*models.JournalEntry, error) {
	return loadEntry(s.db, id)
}

// ListJournalEntries returns a page of entries ordered by date then id,
// newest first unless the request asks for ascending order.
func (s *journalService) ListJournalEntries(page pagination.PageRequest, filter JournalEntryFilter) (*pagination.PageResponse[models.JournalEntry], error) {
	page.Defaults()

	base := applyJournalFilters(s.db.Model(&models.JournalEntry{}), s.db, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.JournalEntry
	if err := withLines(base.Scopes(pagination.Paginate(page, true, "date", "id"))).
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyJournalFilters(q, db *gorm.DB, f JournalEntryFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", period.Normalize(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", period.Normalize(*f.ToDate))
	}
	if f.EntryType != nil {
		q = q.Where("entry_type = ?", *f.EntryType)
	}
	if f.CompanyID != nil {
		q = q.Where("company_id = ?", *f.CompanyID)
	}
	if f.AccountID != nil {
		q = q.Where("(id IN (?) OR id IN (?))",
			db.Model(&models.Debit{}).Select("journal_entry_id").Where("account_id = ?", *f.AccountID),
			db.Model(&models.Credit{}).Select("journal_entry_id").Where("account_id = ?", *f.AccountID),
		)
	}
	return q
}

func withLines(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Debits", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Debits.Account").
		Preload("Credits", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("Credits.Account").
		Preload("Company").
		Preload("FiscalPeriod").
		Preload("PurchaseDetails", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Preload("PurchaseDetails.Item")
}

func loadEntry(db *gorm.DB, id string) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := withLines(db).Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrJournalEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

func (s *journalService) txOptions() []*sql.TxOptions {
	if s.db.Dialector.Name() == "postgres" {
		return []*sql.TxOptions{{Isolation: sql.LevelSerializable}}
	}
	return nil
}

// post creates a new entry, or replaces entry id when id is non-empty.
func (s *journalService) post(id string, input JournalEntryInput) (*models.JournalEntry, error) {
	if input.CompanyID != nil && *input.CompanyID == "" {
		input.CompanyID = nil
	}
	if input.FiscalPeriodID != nil && *input.FiscalPeriodID == "" {
		input.FiscalPeriodID = nil
	}

	postingMu.Lock()
	defer postingMu.Unlock()

	var entryID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry := &models.JournalEntry{}
		if id != "" {
			if err := tx.Where("id = ?", id).First(entry).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrJournalEntryNotFound
				}
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if entry.EntryType == models.EntryTypeAdjustment && input.EntryType == models.EntryTypeNormal {
				input.EntryType = models.EntryTypeAdjustment
				if input.FiscalPeriodID == nil {
					input.FiscalPeriodID = entry.FiscalPeriodID
				}
			}
		}

		prepared, err := prepareEntry(tx, input)
		if err != nil {
			return err
		}

		entry.Date = prepared.date
		entry.Summary = strings.TrimSpace(input.Summary)
		entry.EntryType = input.EntryType
		entry.CompanyID = input.CompanyID
		entry.FiscalPeriodID = input.FiscalPeriodID
		entry.UpdatedBy = input.Actor

		if id == "" {
			entry.CreatedBy = input.Actor
			if err := tx.Omit(clause.Associations).Create(entry).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		} else {
			if err := tx.Omit(clause.Associations).Save(entry).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if err := deleteLines(tx, entry.ID); err != nil {
				return err
			}
		}
		entryID = entry.ID

		if err := createLines(tx, entry.ID, prepared); err != nil {
			return err
		}
		if err := createPurchaseDetails(tx, entry.ID, input.PurchaseDetails); err != nil {
			return err
		}
		if err := syncFixedAsset(tx, entry, prepared, input.FixedAsset); err != nil {
			return err
		}
		if input.RecordDepreciation && entry.EntryType == models.EntryTypeAdjustment {
			if _, err := recordDepreciation(repository.NewLedgerRepository(tx), *entry.FiscalPeriodID, entry.ID, entry.CompanyID); err != nil {
				return err
			}
		}
		return nil
	}, s.txOptions()...)
	if err != nil {
		return nil, err
	}

	return loadEntry(s.db, entryID)
}

// preparedEntry is a validated posting request.
type preparedEntry struct {
	date    time.Time
	debits  []models.Debit
	credits []models.Credit
}

// prepareEntry validates input against the store without writing.
func prepareEntry(tx *gorm.DB, input JournalEntryInput) (*preparedEntry, error) {
	switch input.EntryType {
	case models.EntryTypeNormal, models.EntryTypeAdjustment, models.EntryTypeClosing:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown entry type %q", input.EntryType))
	}

	debits, err := parseLines(input.Debits, "debit")
	if err != nil {
		return nil, err
	}
	credits, err := parseLines(input.Credits, "credit")
	if err != nil {
		return nil, err
	}
	if len(debits) == 0 || len(credits) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one debit line and one credit line are required")
	}

	debitTotal, creditTotal := decimal.Zero, decimal.Zero
	for _, l := range debits {
		debitTotal = debitTotal.Add(l.amount)
	}
	for _, l := range credits {
		creditTotal = creditTotal.Add(l.amount)
	}
	if !debitTotal.Equal(creditTotal) {
		return nil, apperrors.WithMessage(apperrors.ErrUnbalancedEntry,
			fmt.Sprintf("total debits %s must equal total credits %s", debitTotal.StringFixed(2), creditTotal.StringFixed(2)))
	}

	accounts, err := lookupAccounts(tx, append(lineAccounts(debits), lineAccounts(credits)...))
	if err != nil {
		return nil, err
	}
	if input.EntryType == models.EntryTypeNormal {
		for _, a := range accounts {
			if a.IsAdjustmentOnly {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
					fmt.Sprintf("account %q is only allowed in adjustment entries", a.Name))
			}
		}
	}

	if input.CompanyID != nil {
		if err := exists(tx, &models.Company{}, *input.CompanyID, apperrors.ErrCompanyNotFound); err != nil {
			return nil, err
		}
	}

	date := period.Normalize(input.Date)
	if input.FiscalPeriodID != nil {
		var fp models.FiscalPeriod
		if err := tx.Where("id = ?", *input.FiscalPeriodID).First(&fp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrFiscalPeriodNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if input.EntryType == models.EntryTypeAdjustment {
			if fp.IsClosed {
				return nil, apperrors.WithMessage(apperrors.ErrFiscalPeriodClosed,
					fmt.Sprintf("fiscal period %q is closed", fp.Name))
			}
			date = fp.EndDate
		}
	} else if input.EntryType == models.EntryTypeAdjustment {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "fiscal period is required for adjustment entries")
	}

	p := &preparedEntry{date: date}
	for _, l := range debits {
		p.debits = append(p.debits, models.Debit{AccountID: l.accountID, Amount: l.amount, Account: accounts[l.accountID]})
	}
	for _, l := range credits {
		p.credits = append(p.credits, models.Credit{AccountID: l.accountID, Amount: l.amount, Account: accounts[l.accountID]})
	}
	return p, nil
}

type parsedLine struct {
	accountID string
	amount    decimal.Decimal
}

// parseLines validates one side of an entry. Lines with neither account
// nor amount are skipped.
func parseLines(lines []LineInput, side string) ([]parsedLine, error) {
	var parsed []parsedLine
	for i, l := range lines {
		accountID := strings.TrimSpace(l.AccountID)
		raw := strings.TrimSpace(l.Amount)
		if accountID == "" && raw == "" {
			continue
		}
		if accountID == "" || raw == "" {
			return nil, apperrors.WithMessage(apperrors.ErrIncompleteLine,
				fmt.Sprintf("%s line %d: both account and amount are required", side, i+1))
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("%s line %d: invalid amount %q", side, i+1, raw))
		}
		if !amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrNonPositiveAmount,
				fmt.Sprintf("%s line %d: amount must be greater than zero", side, i+1))
		}
		if !amount.Equal(amount.Round(2)) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("%s line %d: amount has more than 2 decimal places", side, i+1))
		}
		parsed = append(parsed, parsedLine{accountID: accountID, amount: amount})
	}
	return parsed, nil
}

func lineAccounts(lines []parsedLine) []string {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.accountID)
	}
	return ids
}

func lookupAccounts(tx *gorm.DB, ids []string) (map[string]models.Account, error) {
	var accounts []models.Account
	if err := tx.Where("id IN ?", ids).Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byID := make(map[string]models.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, apperrors.WithMessage(apperrors.ErrAccountNotFound, fmt.Sprintf("account %s not found", id))
		}
	}
	return byID, nil
}

func exists(tx *gorm.DB, model interface{}, id string, notFound *apperrors.AppError) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return notFound
	}
	return nil
}

func createLines(tx *gorm.DB, entryID string, p *preparedEntry) error {
	for i := range p.debits {
		p.debits[i].JournalEntryID = entryID
		if err := tx.Omit(clause.Associations).Create(&p.debits[i]).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	for i := range p.credits {
		p.credits[i].JournalEntryID = entryID
		if err := tx.Omit(clause.Associations).Create(&p.credits[i]).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

func deleteLines(tx *gorm.DB, entryID string) error {
	for _, model := range []interface{}{&models.Debit{}, &models.Credit{}, &models.PurchaseDetail{}} {
		if err := tx.Where("journal_entry_id = ?", entryID).Delete(model).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

func createPurchaseDetails(tx *gorm.DB, entryID string, details []PurchaseDetailInput) error {
	for i, d := range details {
		name := strings.TrimSpace(d.ItemName)
		if name == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("purchase detail %d: item name is required", i+1))
		}
		qty, err := decimal.NewFromString(strings.TrimSpace(d.Quantity))
		if err != nil || !qty.IsPositive() {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("purchase detail %d: quantity must be a positive number", i+1))
		}
		price, err := decimal.NewFromString(strings.TrimSpace(d.UnitPrice))
		if err != nil || price.IsNegative() {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("purchase detail %d: unit price must be a non-negative number", i+1))
		}

		item := models.Item{Name: name}
		if err := tx.Where("name = ?", name).FirstOrCreate(&item).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		detail := models.PurchaseDetail{JournalEntryID: entryID, ItemID: &item.ID, Quantity: qty, UnitPrice: price}
		if err := tx.Omit(clause.Associations).Create(&detail).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// syncFixedAsset registers a fixed asset from the entry when requested and
// keeps an already registered asset's cost and date in step with the
// entry's current lines.
func syncFixedAsset(tx *gorm.DB, entry *models.JournalEntry, p *preparedEntry, input *FixedAssetInput) error {
	var linked models.FixedAsset
	err := tx.Where("acquisition_journal_entry_id = ?", entry.ID).First(&linked).Error
	switch {
	case err == nil:
		cost := debitsOn(p, linked.AccountID)
		if !cost.IsPositive() {
			return apperrors.WithMessage(apperrors.ErrFixedAssetInvalid,
				fmt.Sprintf("fixed asset %s needs a debit on its account", linked.AssetNumber))
		}
		return wrapInternal(tx.Model(&linked).Updates(map[string]interface{}{
			"acquisition_cost": cost,
			"acquisition_date": entry.Date,
		}).Error)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if input == nil {
		return nil
	}

	if strings.TrimSpace(input.AssetNumber) == "" || strings.TrimSpace(input.Name) == "" ||
		input.AccountID == "" || input.UsefulLife <= 0 {
		return apperrors.WithMessage(apperrors.ErrFixedAssetInvalid,
			"asset number, name, account and a positive useful life are required")
	}
	method := models.DepreciationMethod(input.DepreciationMethod)
	if method == "" {
		method = models.DepreciationStraightLine
	}
	if method != models.DepreciationStraightLine {
		return apperrors.WithMessage(apperrors.ErrFixedAssetInvalid,
			fmt.Sprintf("unsupported depreciation method %q", input.DepreciationMethod))
	}
	residual := decimal.Zero
	if strings.TrimSpace(input.ResidualValue) != "" {
		v, err := decimal.NewFromString(strings.TrimSpace(input.ResidualValue))
		if err != nil || v.IsNegative() {
			return apperrors.WithMessage(apperrors.ErrFixedAssetInvalid, "residual value must be a non-negative number")
		}
		residual = v
	}

	cost := debitsOn(p, input.AccountID)
	if !cost.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrFixedAssetInvalid,
			"the entry has no debit on the fixed asset account")
	}

	var count int64
	if err := tx.Model(&models.FixedAsset{}).Where("asset_number = ?", input.AssetNumber).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateAssetNumber
	}

	entryID := entry.ID
	asset := &models.FixedAsset{
		AssetNumber:               strings.TrimSpace(input.AssetNumber),
		Name:                      strings.TrimSpace(input.Name),
		AccountID:                 input.AccountID,
		CompanyID:                 entry.CompanyID,
		AcquisitionDate:           entry.Date,
		AcquisitionCost:           cost,
		AcquisitionJournalEntryID: &entryID,
		DepreciationMethod:        method,
		UsefulLife:                input.UsefulLife,
		ResidualValue:             residual,
		Status:                    models.FixedAssetActive,
	}
	return wrapInternal(tx.Omit(clause.Associations).Create(asset).Error)
}

func debitsOn(p *preparedEntry, accountID string) decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.debits {
		if d.AccountID == accountID {
			total = total.Add(d.Amount)
		}
	}
	return total
}

func wrapInternal(err error) error {
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

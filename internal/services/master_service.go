package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ledgerbook/internal/accounting"
	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/period"
)

// masterService maintains the reference data journal entries point at.
type masterService struct {
	db *gorm.DB
}

// NewMasterService creates a new MasterServicer.
func NewMasterService(db *gorm.DB) MasterServicer {
	return &masterService{db: db}
}

// CreateAccount adds an account to the chart of accounts.
func (s *masterService) CreateAccount(name string, accountType accounting.AccountType, isDefault, adjustmentOnly bool) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if !accountType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account type must be one of asset, liability, equity, revenue, expense")
	}
	if err := s.ensureAccountNameFree(name, ""); err != nil {
		return nil, err
	}

	account := &models.Account{
		Name:             name,
		Type:             accountType,
		IsDefault:        isDefault,
		IsAdjustmentOnly: adjustmentOnly,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// UpdateAccount applies the non-nil fields to an account.
func (s *masterService) UpdateAccount(id string, fields AccountUpdateFields) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
		}
		if name != account.Name {
			if err := s.ensureAccountNameFree(name, account.ID); err != nil {
				return nil, err
			}
			updates["name"] = name
		}
	}
	if fields.Type != nil {
		if !fields.Type.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account type must be one of asset, liability, equity, revenue, expense")
		}
		updates["type"] = *fields.Type
	}
	if fields.IsDefault != nil {
		updates["is_default"] = *fields.IsDefault
	}
	if fields.IsAdjustmentOnly != nil {
		updates["is_adjustment_only"] = *fields.IsAdjustmentOnly
	}

	if len(updates) > 0 {
		if err := s.db.Model(&account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", account.ID).First(&account).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &account, nil
}

func (s *masterService) ensureAccountNameFree(name, exceptID string) error {
	q := s.db.Model(&models.Account{}).Where("name = ?", name)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateAccount
	}
	return nil
}

// ListAccounts returns the chart of accounts ordered by type and name,
// optionally restricted to one type.
func (s *masterService) ListAccounts(accountType *accounting.AccountType) ([]models.Account, error) {
	q := s.db.Model(&models.Account{})
	if accountType != nil {
		q = q.Where("type = ?", *accountType)
	}
	var accounts []models.Account
	if err := q.Order("type ASC, name ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// CreateCompany registers a trading partner.
func (s *masterService) CreateCompany(name string) (*models.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "company name is required")
	}
	var count int64
	if err := s.db.Model(&models.Company{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "a company with this name already exists")
	}

	company := &models.Company{Name: name}
	if err := s.db.Create(company).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return company, nil
}

// ListCompanies retrieves a paginated list of companies ordered by name.
func (s *masterService) ListCompanies(page pagination.PageRequest) (*pagination.PageResponse[models.Company], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Company{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var companies []models.Company
	if err := base.Scopes(pagination.Paginate(page, false, "name")).Find(&companies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(companies, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// CreateFiscalPeriod adds an open fiscal period. The end must fall after
// the start.
func (s *masterService) CreateFiscalPeriod(name string, start, end time.Time) (*models.FiscalPeriod, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "fiscal period name is required")
	}
	if start.IsZero() || end.IsZero() || !period.Normalize(end).After(period.Normalize(start)) {
		return nil, apperrors.ErrInvalidFiscalPeriod
	}

	fp := &models.FiscalPeriod{Name: name, StartDate: start, EndDate: end}
	if err := s.db.Create(fp).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return fp, nil
}

// SetFiscalPeriodClosed opens or closes a fiscal period. Closed periods
// accept no further adjustment entries.
func (s *masterService) SetFiscalPeriodClosed(id string, closed bool) (*models.FiscalPeriod, error) {
	var fp models.FiscalPeriod
	if err := s.db.Where("id = ?", id).First(&fp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFiscalPeriodNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&fp).Update("is_closed", closed).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	fp.IsClosed = closed
	return &fp, nil
}

// ListFiscalPeriods returns periods newest first.
func (s *masterService) ListFiscalPeriods(openOnly bool) ([]models.FiscalPeriod, error) {
	q := s.db.Model(&models.FiscalPeriod{})
	if openOnly {
		q = q.Where("is_closed = ?", false)
	}
	var periods []models.FiscalPeriod
	if err := q.Order("start_date DESC").Find(&periods).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return periods, nil
}

// SetInitialBalance creates or replaces the opening balance of an account.
func (s *masterService) SetInitialBalance(accountID string, balance decimal.Decimal, start time.Time) (*models.InitialBalance, error) {
	if start.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start date is required")
	}
	var account models.Account
	if err := s.db.Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	ib := &models.InitialBalance{AccountID: accountID, Balance: balance.Round(2), StartDate: start}
	err := s.db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"balance", "start_date", "updated_at"}),
	}).Create(ib).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var saved models.InitialBalance
	if err := s.db.Preload("Account").Where("account_id = ?", accountID).First(&saved).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &saved, nil
}

// ListFixedAssets returns fixed assets ordered by asset number.
func (s *masterService) ListFixedAssets(status *models.FixedAssetStatus) ([]models.FixedAsset, error) {
	q := s.db.Model(&models.FixedAsset{}).Preload("Account")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var assets []models.FixedAsset
	if err := q.Order("asset_number ASC").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

package models

import (
	"time"

	"ledgerbook/internal/period"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DepreciationMethod is how a fixed asset loses value.
type DepreciationMethod string

const (
	DepreciationStraightLine DepreciationMethod = "straight_line"
)

// FixedAssetStatus tracks whether an asset is still depreciated.
type FixedAssetStatus string

const (
	FixedAssetActive   FixedAssetStatus = "active"
	FixedAssetDisposed FixedAssetStatus = "disposed"
)

// FixedAsset is a long-lived asset registered from its acquisition entry.
type FixedAsset struct {
	Base
	AssetNumber               string             `gorm:"not null;uniqueIndex" json:"asset_number"`
	Name                      string             `gorm:"not null" json:"name"`
	AccountID                 string             `gorm:"type:uuid;not null;index" json:"account_id"`
	CompanyID                 *string            `gorm:"type:uuid;index" json:"company_id,omitempty"`
	AcquisitionDate           time.Time          `gorm:"type:date;not null" json:"acquisition_date"`
	AcquisitionCost           decimal.Decimal    `gorm:"type:decimal(14,2);not null" json:"acquisition_cost"`
	AcquisitionJournalEntryID *string            `gorm:"type:uuid" json:"acquisition_journal_entry_id,omitempty"`
	DepreciationMethod        DepreciationMethod `gorm:"type:varchar(20);not null;default:'straight_line'" json:"depreciation_method"`
	UsefulLife                int                `gorm:"not null" json:"useful_life"`
	ResidualValue             decimal.Decimal    `gorm:"type:decimal(14,2);not null;default:0" json:"residual_value"`
	Status                    FixedAssetStatus   `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	// Relationships
	Account               Account               `gorm:"foreignKey:AccountID" json:"account"`
	DepreciationHistories []DepreciationHistory `gorm:"foreignKey:FixedAssetID;constraint:OnDelete:CASCADE" json:"depreciation_histories,omitempty"`
}

// BeforeSave hook keeps the acquisition date on a calendar day.
func (a *FixedAsset) BeforeSave(tx *gorm.DB) error {
	a.AcquisitionDate = period.Normalize(a.AcquisitionDate)
	if a.DepreciationMethod == "" {
		a.DepreciationMethod = DepreciationStraightLine
	}
	if a.Status == "" {
		a.Status = FixedAssetActive
	}
	return nil
}

// DepreciationHistory records the depreciation booked for one asset in one
// fiscal period. An asset is depreciated at most once per period.
type DepreciationHistory struct {
	Base
	FixedAssetID   string          `gorm:"type:uuid;not null;uniqueIndex:idx_depreciation_asset_period" json:"fixed_asset_id"`
	FiscalPeriodID string          `gorm:"type:uuid;not null;uniqueIndex:idx_depreciation_asset_period" json:"fiscal_period_id"`
	JournalEntryID *string         `gorm:"type:uuid" json:"journal_entry_id,omitempty"`
	Amount         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`

	FiscalPeriod FiscalPeriod `gorm:"foreignKey:FiscalPeriodID" json:"fiscal_period"`
}

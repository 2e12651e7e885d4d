package models

import (
	"time"

	"ledgerbook/internal/accounting"
	"ledgerbook/internal/period"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account is a named bucket in the chart of accounts.
type Account struct {
	Base
	Name             string                 `gorm:"not null;uniqueIndex" json:"name"`
	Type             accounting.AccountType `gorm:"type:varchar(20);not null;index" json:"type"`
	IsDefault        bool                   `gorm:"not null;default:false" json:"is_default"`
	IsAdjustmentOnly bool                   `gorm:"not null;default:false" json:"is_adjustment_only"`
}

// NormalSide returns the side on which this account carries its balance.
func (a *Account) NormalSide() accounting.Side {
	return accounting.NormalSide(a.Type)
}

// Company is a trading partner an entry can be tagged with.
type Company struct {
	Base
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

// InitialBalance anchors an account's balance at a start date. Cash-book
// roll-forwards accumulate from here.
type InitialBalance struct {
	Base
	AccountID string          `gorm:"type:uuid;not null;uniqueIndex" json:"account_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"balance"`
	StartDate time.Time       `gorm:"type:date;not null" json:"start_date"`

	Account Account `gorm:"foreignKey:AccountID" json:"account"`
}

// BeforeSave hook keeps the anchor date on a calendar day.
func (b *InitialBalance) BeforeSave(tx *gorm.DB) error {
	b.StartDate = period.Normalize(b.StartDate)
	return nil
}

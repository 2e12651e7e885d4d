package models

import (
	"time"

	"ledgerbook/internal/period"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EntryType classifies a journal entry.
type EntryType string

const (
	EntryTypeNormal     EntryType = "normal"
	EntryTypeAdjustment EntryType = "adjustment"
	EntryTypeClosing    EntryType = "closing"
)

// JournalEntry is one dated business event recorded as balanced debit and
// credit lines.
type JournalEntry struct {
	Base
	Date           time.Time `gorm:"type:date;not null;index" json:"date"`
	Summary        string    `json:"summary"`
	EntryType      EntryType `gorm:"type:varchar(20);not null;default:'normal';index" json:"entry_type"`
	CompanyID      *string   `gorm:"type:uuid;index" json:"company_id,omitempty"`
	FiscalPeriodID *string   `gorm:"type:uuid;index" json:"fiscal_period_id,omitempty"`
	CreatedBy      string    `json:"created_by,omitempty"`
	UpdatedBy      string    `json:"updated_by,omitempty"`

	// Relationships
	Company         *Company         `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	FiscalPeriod    *FiscalPeriod    `gorm:"foreignKey:FiscalPeriodID" json:"fiscal_period,omitempty"`
	Debits          []Debit          `gorm:"foreignKey:JournalEntryID;constraint:OnDelete:CASCADE" json:"debits"`
	Credits         []Credit         `gorm:"foreignKey:JournalEntryID;constraint:OnDelete:CASCADE" json:"credits"`
	PurchaseDetails []PurchaseDetail `gorm:"foreignKey:JournalEntryID;constraint:OnDelete:CASCADE" json:"purchase_details,omitempty"`
}

// BeforeSave hook keeps entry dates on calendar days.
func (e *JournalEntry) BeforeSave(tx *gorm.DB) error {
	e.Date = period.Normalize(e.Date)
	return nil
}

// DebitTotal sums the loaded debit lines.
func (e *JournalEntry) DebitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range e.Debits {
		total = total.Add(d.Amount)
	}
	return total
}

// CreditTotal sums the loaded credit lines.
func (e *JournalEntry) CreditTotal() decimal.Decimal {
	total := decimal.Zero
	for _, c := range e.Credits {
		total = total.Add(c.Amount)
	}
	return total
}

// Debit is a debit line of a journal entry.
type Debit struct {
	Base
	JournalEntryID string          `gorm:"type:uuid;not null;index" json:"journal_entry_id"`
	AccountID      string          `gorm:"type:uuid;not null;index" json:"account_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`

	Account Account `gorm:"foreignKey:AccountID" json:"account"`
}

// Credit is a credit line of a journal entry.
type Credit struct {
	Base
	JournalEntryID string          `gorm:"type:uuid;not null;index" json:"journal_entry_id"`
	AccountID      string          `gorm:"type:uuid;not null;index" json:"account_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`

	Account Account `gorm:"foreignKey:AccountID" json:"account"`
}

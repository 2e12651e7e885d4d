package models

import "github.com/shopspring/decimal"

// Item is a purchasable good listed on purchase-book lines.
type Item struct {
	Base
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

// PurchaseDetail is one item line attached to a purchase entry.
type PurchaseDetail struct {
	Base
	JournalEntryID string          `gorm:"type:uuid;not null;index" json:"journal_entry_id"`
	ItemID         *string         `gorm:"type:uuid" json:"item_id,omitempty"`
	Quantity       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"unit_price"`

	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// Amount is quantity times unit price.
func (d *PurchaseDetail) Amount() decimal.Decimal {
	return d.Quantity.Mul(d.UnitPrice)
}

// All lists every model for auto-migration, parents before children.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&Company{},
		&FiscalPeriod{},
		&InitialBalance{},
		&JournalEntry{},
		&Debit{},
		&Credit{},
		&Item{},
		&PurchaseDetail{},
		&FixedAsset{},
		&DepreciationHistory{},
	}
}

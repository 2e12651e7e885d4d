package models

import (
	"time"

	"ledgerbook/internal/period"

	"gorm.io/gorm"
)

// FiscalPeriod is an accounting year (or a shorter first year). Adjustment
// entries are dated on its last day.
type FiscalPeriod struct {
	Base
	Name      string    `gorm:"not null" json:"name"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null;index" json:"end_date"`
	IsClosed  bool      `gorm:"not null;default:false" json:"is_closed"`
}

// BeforeSave hook normalises the period bounds to calendar days.
func (p *FiscalPeriod) BeforeSave(tx *gorm.DB) error {
	p.StartDate = period.Normalize(p.StartDate)
	p.EndDate = period.Normalize(p.EndDate)
	return nil
}

// MonthCount returns the number of calendar months the period spans.
func (p *FiscalPeriod) MonthCount() int {
	return period.MonthsBetween(p.StartDate, p.EndDate)
}

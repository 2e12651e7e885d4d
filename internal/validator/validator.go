// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"ledgerbook/internal/accounting"
	"ledgerbook/internal/models"
	"ledgerbook/internal/period"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn adds the ledger validation tags to v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("account_type", validateAccountType)
	_ = v.RegisterValidation("entry_type", validateEntryType)
	_ = v.RegisterValidation("year_month", validateYearMonth)
	_ = v.RegisterValidation("depreciation_method", validateDepreciationMethod)
	_ = v.RegisterValidation("decimal_positive", validateDecimalPositive)
	_ = v.RegisterValidation("decimal", validateDecimal)
	_ = v.RegisterValidation("iso_date", validateISODate)
}

func validateAccountType(fl validator.FieldLevel) bool {
	return accounting.AccountType(fl.Field().String()).Valid()
}

func validateEntryType(fl validator.FieldLevel) bool {
	switch models.EntryType(fl.Field().String()) {
	case models.EntryTypeNormal, models.EntryTypeAdjustment, models.EntryTypeClosing:
		return true
	}
	return false
}

func validateYearMonth(fl validator.FieldLevel) bool {
	_, err := period.ParseYearMonth(fl.Field().String())
	return err == nil
}

func validateDepreciationMethod(fl validator.FieldLevel) bool {
	return models.DepreciationMethod(fl.Field().String()) == models.DepreciationStraightLine
}

// validateDecimalPositive accepts amounts greater than zero with at most
// two decimal places.
func validateDecimalPositive(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.IsPositive() && d.Equal(d.Round(2))
}

func validateDecimal(fl validator.FieldLevel) bool {
	_, err := decimal.NewFromString(fl.Field().String())
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

// ParseDate parses a calendar date given as YYYY-MM-DD or RFC 3339 and
// returns it at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
		}
	}
	return period.Normalize(t), nil
}

// Package errors provides the application error type for the ledger API.
// Every service-layer failure is an AppError so handlers can render a
// stable code and message without leaking store details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target carries the same code, so a customised copy
// still matches its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Master data errors.
var (
	ErrAccountNotFound       = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrDuplicateAccount      = &AppError{Code: "DUPLICATE_ACCOUNT", Message: "An account with this name already exists", StatusCode: http.StatusConflict}
	ErrCompanyNotFound       = &AppError{Code: "COMPANY_NOT_FOUND", Message: "Company not found", StatusCode: http.StatusNotFound}
	ErrFiscalPeriodNotFound  = &AppError{Code: "FISCAL_PERIOD_NOT_FOUND", Message: "Fiscal period not found", StatusCode: http.StatusNotFound}
	ErrFiscalPeriodClosed    = &AppError{Code: "FISCAL_PERIOD_CLOSED", Message: "Fiscal period is closed", StatusCode: http.StatusBadRequest}
	ErrInvalidFiscalPeriod   = &AppError{Code: "INVALID_FISCAL_PERIOD", Message: "Fiscal period must end after it starts", StatusCode: http.StatusBadRequest}
	ErrFixedAssetNotFound    = &AppError{Code: "FIXED_ASSET_NOT_FOUND", Message: "Fixed asset not found", StatusCode: http.StatusNotFound}
	ErrDuplicateAssetNumber  = &AppError{Code: "DUPLICATE_ASSET_NUMBER", Message: "A fixed asset with this number already exists", StatusCode: http.StatusConflict}
	ErrCashBookMisconfigured = &AppError{Code: "CASHBOOK_MISCONFIGURED", Message: "Cash book target account is not configured", StatusCode: http.StatusInternalServerError}
	ErrCashBookNotFound      = &AppError{Code: "CASHBOOK_NOT_FOUND", Message: "Cash book not found", StatusCode: http.StatusNotFound}
)

// Journal entry errors.
var (
	ErrJournalEntryNotFound = &AppError{Code: "JOURNAL_ENTRY_NOT_FOUND", Message: "Journal entry not found", StatusCode: http.StatusNotFound}
	ErrUnbalancedEntry      = &AppError{Code: "UNBALANCED_ENTRY", Message: "Total debits must equal total credits", StatusCode: http.StatusBadRequest}
	ErrNonPositiveAmount    = &AppError{Code: "NON_POSITIVE_AMOUNT", Message: "Amount must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrIncompleteLine       = &AppError{Code: "INCOMPLETE_LINE", Message: "Both account and amount are required", StatusCode: http.StatusBadRequest}
	ErrFixedAssetInvalid    = &AppError{Code: "FIXED_ASSET_INVALID", Message: "Fixed asset registration is invalid", StatusCode: http.StatusBadRequest}
)

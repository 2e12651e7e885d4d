package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"ledgerbook/internal/accounting"
	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
	"ledgerbook/internal/period"
	"ledgerbook/internal/services"
)

// ReportServices are the read-side services behind the report endpoints.
type ReportServices struct {
	GeneralLedger services.GeneralLedgerServicer
	CashBooks     map[string]services.CashBookServicer
	Balances      services.BalanceServicer
	Statements    services.StatementServicer
	Dashboard     services.DashboardServicer
	PurchaseBook  services.PurchaseBookServicer
}

// ReportHandler handles ledger, book and statement reports.
type ReportHandler struct {
	svc              ReportServices
	fiscalStartMonth int
	now              func() time.Time
}

// NewReportHandler creates a new ReportHandler. now defaults to time.Now.
func NewReportHandler(svc ReportServices, fiscalStartMonth int, now func() time.Time) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	if fiscalStartMonth < 1 || fiscalStartMonth > 12 {
		fiscalStartMonth = period.DefaultFiscalStartMonth
	}
	return &ReportHandler{svc: svc, fiscalStartMonth: fiscalStartMonth, now: now}
}

// GeneralLedgerResponse is a general ledger. Error is set instead of
// failing the request when the account does not exist.
type GeneralLedgerResponse struct {
	*services.GeneralLedger
	Error string `json:"error,omitempty"`
}

// CashBookResponse is one month of a cash book. Error is set instead of
// failing the request when the book's account does not exist.
type CashBookResponse struct {
	*services.CashBookReport
	Error string `json:"error,omitempty"`
}

// CashBookInfo names a configured cash book.
type CashBookInfo struct {
	Key         string `json:"key"`
	AccountName string `json:"account_name"`
}

// AccountTotalsResponse lists signed account totals over a range.
type AccountTotalsResponse struct {
	Range  period.DayRange         `json:"range"`
	Totals []services.AccountTotal `json:"totals"`
}

// isAccountNotFound reports whether err is the account lookup failure that
// reports degrade on.
func isAccountNotFound(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Code == apperrors.ErrAccountNotFound.Code
}

// GetGeneralLedger handles the general ledger of one account
// @Summary     General ledger
// @Description Running-balance ledger of one account, for one month or all time
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       account_name query string true  "Account name"
// @Param       year_month   query string false "Month (YYYY-MM); all time when omitted"
// @Success     200 {object} GeneralLedgerResponse "General ledger"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/general-ledger [get]
func (h *ReportHandler) GetGeneralLedger(c *gin.Context) {
	name := strings.TrimSpace(c.Query("account_name"))
	if name == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "account_name is required"))
		return
	}

	var ym *period.YearMonth
	if v := c.Query("year_month"); v != "" {
		parsed, err := period.ParseYearMonth(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		ym = &parsed
	}

	ledger, err := h.svc.GeneralLedger.GeneralLedger(name, ym)
	if err != nil {
		if isAccountNotFound(err) {
			c.JSON(http.StatusOK, GeneralLedgerResponse{
				GeneralLedger: &services.GeneralLedger{
					Account:       models.Account{Name: name},
					Rows:          []services.LedgerRow{},
					DebitTotal:    decimal.Zero,
					CreditTotal:   decimal.Zero,
					EndingBalance: decimal.Zero,
				},
				Error: name + " not found",
			})
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, GeneralLedgerResponse{GeneralLedger: ledger})
}

// ListCashBooks handles listing the configured cash books
// @Summary     List cash books
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]CashBookInfo "Cash books"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/cashbooks [get]
func (h *ReportHandler) ListCashBooks(c *gin.Context) {
	books := make([]CashBookInfo, 0, len(h.svc.CashBooks))
	for key, book := range h.svc.CashBooks {
		books = append(books, CashBookInfo{Key: key, AccountName: book.AccountName()})
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Key < books[j].Key })

	c.JSON(http.StatusOK, gin.H{"cashbooks": books})
}

// GetCashBook handles one month of a cash book
// @Summary     Cash book month
// @Description Monthly roll-forward of a cash-like account framed by brought-forward and carried-forward rows
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       book  path  string true  "Cash book key (e.g. cash, checking, petty-cash)"
// @Param       year  query int    false "Year (default current)"
// @Param       month query int    false "Month 1-12 (default current)"
// @Success     200 {object} CashBookResponse "Cash book"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Cash book not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/cashbooks/{book} [get]
func (h *ReportHandler) GetCashBook(c *gin.Context) {
	book, ok := h.svc.CashBooks[c.Param("book")]
	if !ok {
		respondWithError(c, apperrors.ErrCashBookNotFound)
		return
	}

	ym, err := yearMonthQuery(c, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := book.MonthlyBalance(ym.Year, ym.Month)
	if err != nil {
		if isAccountNotFound(err) && report != nil {
			c.JSON(http.StatusOK, CashBookResponse{
				CashBookReport: report,
				Error:          book.AccountName() + " not found",
			})
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CashBookResponse{CashBookReport: report})
}

// GetAccountTotals handles signed totals per account
// @Summary     Account totals
// @Description Signed total of every account over a date range, positive on the account's normal side
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       from  query string false "Start date (YYYY-MM-DD, default start of current fiscal year)"
// @Param       to    query string false "End date (YYYY-MM-DD, default end of current fiscal year)"
// @Param       types query string false "Comma-separated account types"
// @Success     200 {object} AccountTotalsResponse "Account totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/account-totals [get]
func (h *ReportHandler) GetAccountTotals(c *gin.Context) {
	r := period.FiscalRange(currentFiscalYear(h.now(), h.fiscalStartMonth), h.fiscalStartMonth, 12)

	from, err := optionalDateQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := optionalDateQuery(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if from != nil {
		r.Start = *from
	}
	if to != nil {
		r.End = *to
	}
	if r.End.Before(r.Start) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must not be before from"))
		return
	}

	var types []accounting.AccountType
	if v := c.Query("types"); v != "" {
		for _, part := range strings.Split(v, ",") {
			t := accounting.AccountType(strings.TrimSpace(part))
			if !t.Valid() {
				respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid account type "+string(t)))
				return
			}
			types = append(types, t)
		}
	}

	totals, err := h.svc.Balances.CalcEachAccountTotals(r, types...)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AccountTotalsResponse{Range: r, Totals: totals})
}

// GetTrialBalance handles the trial balance of a fiscal year
// @Summary     Trial balance
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Fiscal year (default current)"
// @Success     200 {object} services.TrialBalance "Trial balance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/trial-balance [get]
func (h *ReportHandler) GetTrialBalance(c *gin.Context) {
	year, err := fiscalYearQuery(c, h.now(), h.fiscalStartMonth)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tb, err := h.svc.Statements.TrialBalance(year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tb)
}

// GetBalanceSheet handles the balance sheet of a fiscal year
// @Summary     Balance sheet
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Fiscal year (default current)"
// @Success     200 {object} services.BalanceSheet "Balance sheet"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/balance-sheet [get]
func (h *ReportHandler) GetBalanceSheet(c *gin.Context) {
	year, err := fiscalYearQuery(c, h.now(), h.fiscalStartMonth)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bs, err := h.svc.Statements.BalanceSheet(year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bs)
}

// GetProfitAndLoss handles the profit and loss statement of a fiscal year
// @Summary     Profit and loss
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Fiscal year (default current)"
// @Success     200 {object} services.ProfitAndLoss "Profit and loss"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/profit-and-loss [get]
func (h *ReportHandler) GetProfitAndLoss(c *gin.Context) {
	year, err := fiscalYearQuery(c, h.now(), h.fiscalStartMonth)
	if err != nil {
		respondWithError(c, err)
		return
	}

	pl, err := h.svc.Statements.ProfitAndLoss(year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pl)
}

// GetDashboard handles the landing-page trend series
// @Summary     Dashboard
// @Description Six-month sales, expense and profit series with last month's company sales and Pareto chart
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.svc.Dashboard.Dashboard()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetPurchaseBook handles one month of the purchase book
// @Summary     Purchase book
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year  query int false "Year (default current)"
// @Param       month query int false "Month 1-12 (default current)"
// @Success     200 {object} services.PurchaseBook "Purchase book"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Purchase account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/purchase-book [get]
func (h *ReportHandler) GetPurchaseBook(c *gin.Context) {
	ym, err := yearMonthQuery(c, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	book, err := h.svc.PurchaseBook.PurchaseBook(ym)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

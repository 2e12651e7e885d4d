package services

import (
	"time"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/accounting"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/period"
	"ledgerbook/internal/repository"
)

// AccountTotal is one account's signed total over a range.
type AccountTotal struct {
	Account models.Account  `json:"account"`
	Total   decimal.Decimal `json:"total"`
}

// BalanceServicer aggregates signed account totals over date ranges.
type BalanceServicer interface {
	AccountTotal(account *models.Account, r period.DayRange) (decimal.Decimal, error)
	TotalByAccountType(accountType accounting.AccountType, r period.DayRange) (decimal.Decimal, error)
	CalcEachAccountTotals(r period.DayRange, types ...accounting.AccountType) ([]AccountTotal, error)
	BalanceAsOf(account *models.Account, asOf time.Time, companyID *string) (decimal.Decimal, error)
}

// LedgerRow is one line of a general ledger.
type LedgerRow struct {
	EntryID        string          `json:"entry_id"`
	Date           time.Time       `json:"date"`
	Summary        string          `json:"summary"`
	CounterParty   string          `json:"counter_party"`
	DebitAmount    decimal.Decimal `json:"debit_amount"`
	CreditAmount   decimal.Decimal `json:"credit_amount"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// GeneralLedger is the ledger of one account, optionally limited to a range.
type GeneralLedger struct {
	Account       models.Account   `json:"account"`
	Range         *period.DayRange `json:"range,omitempty"`
	Rows          []LedgerRow      `json:"rows"`
	DebitTotal    decimal.Decimal  `json:"debit_total"`
	CreditTotal   decimal.Decimal  `json:"credit_total"`
	EndingBalance decimal.Decimal  `json:"ending_balance"`
}

// GeneralLedgerServicer builds running-balance ledgers.
type GeneralLedgerServicer interface {
	GeneralLedgerRows(account *models.Account, r *period.DayRange) ([]LedgerRow, error)
	GeneralLedger(accountName string, ym *period.YearMonth) (*GeneralLedger, error)
}

// CashBookRow is one line of a monthly cash book. Synthetic carry rows have
// no entry id.
type CashBookRow struct {
	EntryID      string          `json:"entry_id,omitempty"`
	Date         time.Time       `json:"date"`
	Summary      string          `json:"summary"`
	CounterParty string          `json:"counter_party,omitempty"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// CashBookReport is one month of a cash book.
type CashBookReport struct {
	AccountName   string          `json:"account_name"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	BroughtIn     decimal.Decimal `json:"brought_forward"`
	Data          []CashBookRow   `json:"data"`
	EndingBalance decimal.Decimal `json:"ending_balance"`
}

// CashBookServicer computes the monthly roll-forward of one cash-like
// account.
type CashBookServicer interface {
	AccountName() string
	MonthlyBalance(year, month int) (*CashBookReport, error)
}

// ParetoChart is the cumulative revenue share of companies, largest first.
type ParetoChart struct {
	Labels                []string          `json:"labels"`
	Amounts               []decimal.Decimal `json:"amounts"`
	Percentages           []int             `json:"percentages"`
	CumulativePercentages []int             `json:"cumulative_percentages"`
}

// Dashboard aggregates the trend series shown on the landing page.
type Dashboard struct {
	Labels           []string                   `json:"labels"`
	Sales            []decimal.Decimal          `json:"sales"`
	Expenses         []decimal.Decimal          `json:"expenses"`
	Profits          []decimal.Decimal          `json:"profits"`
	CompanySales     []repository.CompanyAmount `json:"company_sales"`
	Pareto           ParetoChart                `json:"pareto"`
	ExpenseBreakdown []AccountTotal             `json:"expense_breakdown"`
}

// DashboardServicer derives multi-month trend series.
type DashboardServicer interface {
	MonthlySales(ym period.YearMonth) (decimal.Decimal, error)
	MonthlyExpense(ym period.YearMonth) (decimal.Decimal, error)
	MonthlyProfit(ym period.YearMonth) (decimal.Decimal, error)
	RecentHalfYear(fn func(period.YearMonth) (decimal.Decimal, error)) ([]decimal.Decimal, error)
	CompanySalesLastMonth() ([]repository.CompanyAmount, error)
	ExpenseBreakdownLastMonth() ([]AccountTotal, error)
	Dashboard() (*Dashboard, error)
}

// StatementLine is one account on a financial statement.
type StatementLine struct {
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	Amount      decimal.Decimal `json:"amount"`
}

// TrialBalance splits every account into its normal-side column.
type TrialBalance struct {
	Year        int             `json:"year"`
	Range       period.DayRange `json:"range"`
	Debits      []StatementLine `json:"debits"`
	Credits     []StatementLine `json:"credits"`
	DebitTotal  decimal.Decimal `json:"debit_total"`
	CreditTotal decimal.Decimal `json:"credit_total"`
}

// BalanceSheet compares assets with liabilities and equity. The difference
// is shown as retained earnings or deficit.
type BalanceSheet struct {
	Year             int             `json:"year"`
	Range            period.DayRange `json:"range"`
	Assets           []StatementLine `json:"assets"`
	Liabilities      []StatementLine `json:"liabilities"`
	Equity           []StatementLine `json:"equity"`
	AssetTotal       decimal.Decimal `json:"asset_total"`
	LiabilityTotal   decimal.Decimal `json:"liability_total"`
	EquityTotal      decimal.Decimal `json:"equity_total"`
	RetainedEarnings decimal.Decimal `json:"retained_earnings"`
	Deficit          decimal.Decimal `json:"deficit"`
}

// ProfitAndLoss compares expenses with revenue.
type ProfitAndLoss struct {
	Year         int             `json:"year"`
	Range        period.DayRange `json:"range"`
	Expenses     []StatementLine `json:"expenses"`
	Revenues     []StatementLine `json:"revenues"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	RevenueTotal decimal.Decimal `json:"revenue_total"`
	NetIncome    decimal.Decimal `json:"net_income"`
	NetLoss      decimal.Decimal `json:"net_loss"`
}

// StatementServicer builds year-end statements for a fiscal year.
type StatementServicer interface {
	TrialBalance(year int) (*TrialBalance, error)
	BalanceSheet(year int) (*BalanceSheet, error)
	ProfitAndLoss(year int) (*ProfitAndLoss, error)
}

// DepreciationLine is the straight-line computation for one asset.
type DepreciationLine struct {
	AssetID                   string          `json:"asset_id"`
	AssetNumber               string          `json:"asset_number"`
	AssetName                 string          `json:"asset_name"`
	AccountName               string          `json:"account_name"`
	AcquisitionDate           time.Time       `json:"acquisition_date"`
	AcquisitionCost           decimal.Decimal `json:"acquisition_cost"`
	UsefulLife                int             `json:"useful_life"`
	DepreciationMethod        string          `json:"depreciation_method"`
	AnnualDepreciation        decimal.Decimal `json:"annual_depreciation"`
	MonthlyDepreciation       decimal.Decimal `json:"monthly_depreciation"`
	MonthsInPeriod            int             `json:"months_in_period"`
	CurrentPeriodDepreciation decimal.Decimal `json:"current_period_depreciation"`
	AccumulatedDepreciation   decimal.Decimal `json:"accumulated_depreciation"`
	AccumulatedWithCurrent    decimal.Decimal `json:"accumulated_depreciation_with_current"`
	BookValue                 decimal.Decimal `json:"book_value"`
	AlreadyRecorded           bool            `json:"already_recorded"`
}

// DepreciationSummary covers every active asset for one fiscal period.
type DepreciationSummary struct {
	Assets            []DepreciationLine `json:"assets"`
	TotalDepreciation decimal.Decimal    `json:"total_depreciation"`
	HasUnrecorded     bool               `json:"has_unrecorded"`
}

// ReceivableBalance is one receivable account's balance at period end.
type ReceivableBalance struct {
	AccountName string          `json:"account_name"`
	Balance     decimal.Decimal `json:"balance"`
}

// AllowanceCalculation is the allowance for doubtful accounts due at
// period end.
type AllowanceCalculation struct {
	Receivables       []ReceivableBalance `json:"receivables_accounts"`
	TotalReceivables  decimal.Decimal     `json:"total_receivables"`
	AllowanceRate     decimal.Decimal     `json:"allowance_rate"`
	RequiredAllowance decimal.Decimal     `json:"required_allowance"`
	PreviousAllowance decimal.Decimal     `json:"previous_allowance"`
	EntryAmount       decimal.Decimal     `json:"entry_amount"`
	IsReversal        bool                `json:"is_reversal"`
}

// AdjustmentInfo bundles the year-end adjustment references of a period.
type AdjustmentInfo struct {
	FiscalPeriod models.FiscalPeriod   `json:"fiscal_period"`
	Depreciation *DepreciationSummary  `json:"depreciation"`
	Allowance    *AllowanceCalculation `json:"allowance"`
}

// AdjustmentServicer computes year-end depreciation and allowance figures.
type AdjustmentServicer interface {
	CalculateDepreciation(periodID string, companyID *string) (*DepreciationSummary, error)
	RecordDepreciation(periodID, journalEntryID string, companyID *string) (int, error)
	CalculateAllowance(periodID string, companyID *string) (*AllowanceCalculation, error)
	AdjustmentInfo(periodID string, companyID *string) (*AdjustmentInfo, error)
}

// LineInput is one debit or credit line of a posting request.
type LineInput struct {
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
}

// FixedAssetInput registers a fixed asset from the posted entry.
type FixedAssetInput struct {
	AssetNumber        string `json:"asset_number"`
	Name               string `json:"name"`
	AccountID          string `json:"account_id"`
	UsefulLife         int    `json:"useful_life"`
	ResidualValue      string `json:"residual_value"`
	DepreciationMethod string `json:"depreciation_method"`
}

// PurchaseDetailInput is one item line of a purchase entry.
type PurchaseDetailInput struct {
	ItemName  string `json:"item_name"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// JournalEntryInput is the validated shape of a posting request.
type JournalEntryInput struct {
	Date            time.Time
	Summary         string
	EntryType       models.EntryType
	CompanyID       *string
	FiscalPeriodID  *string
	Debits          []LineInput
	Credits         []LineInput
	FixedAsset      *FixedAssetInput
	PurchaseDetails []PurchaseDetailInput
	Actor           string

	// RecordDepreciation writes depreciation histories for the period in
	// the same transaction. Adjustment entries only.
	RecordDepreciation bool
}

// JournalEntryFilter holds optional filter parameters for listing entries.
type JournalEntryFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	EntryType *models.EntryType
	CompanyID *string
	AccountID *string
}

// JournalServicer records balanced journal entries.
type JournalServicer interface {
	CreateJournalEntry(input JournalEntryInput) (*models.JournalEntry, error)
	CreateAdjustmentEntry(input JournalEntryInput) (*models.JournalEntry, error)
	UpdateJournalEntry(id string, input JournalEntryInput) (*models.JournalEntry, error)
	DeleteJournalEntry(id string) error
	GetJournalEntry(id string) (*models.JournalEntry, error)
	ListJournalEntries(page pagination.PageRequest, filter JournalEntryFilter) (*pagination.PageResponse[models.JournalEntry], error)
}

// AccountUpdateFields holds optional fields for updating an account.
type AccountUpdateFields struct {
	Name             *string
	Type             *accounting.AccountType
	IsDefault        *bool
	IsAdjustmentOnly *bool
}

// MasterServicer maintains accounts, companies, fiscal periods, opening
// balances and fixed assets.
type MasterServicer interface {
	CreateAccount(name string, accountType accounting.AccountType, isDefault, adjustmentOnly bool) (*models.Account, error)
	UpdateAccount(id string, fields AccountUpdateFields) (*models.Account, error)
	ListAccounts(accountType *accounting.AccountType) ([]models.Account, error)
	CreateCompany(name string) (*models.Company, error)
	ListCompanies(page pagination.PageRequest) (*pagination.PageResponse[models.Company], error)
	CreateFiscalPeriod(name string, start, end time.Time) (*models.FiscalPeriod, error)
	SetFiscalPeriodClosed(id string, closed bool) (*models.FiscalPeriod, error)
	ListFiscalPeriods(openOnly bool) ([]models.FiscalPeriod, error)
	SetInitialBalance(accountID string, balance decimal.Decimal, start time.Time) (*models.InitialBalance, error)
	ListFixedAssets(status *models.FixedAssetStatus) ([]models.FixedAsset, error)
}

// PurchaseBookLine is one item line under a purchase-book row.
type PurchaseBookLine struct {
	ItemName  string          `json:"item_name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

// PurchaseBookRow is one purchase or purchase return.
type PurchaseBookRow struct {
	EntryID     string             `json:"entry_id"`
	Date        time.Time          `json:"date"`
	Summary     string             `json:"summary"`
	CompanyName string             `json:"company_name"`
	Counter     string             `json:"counter_account"`
	IsReturn    bool               `json:"is_return"`
	Amount      decimal.Decimal    `json:"amount"`
	Lines       []PurchaseBookLine `json:"lines"`
}

// PurchaseBook is one month of purchases.
type PurchaseBook struct {
	Year          int               `json:"year"`
	Month         int               `json:"month"`
	Rows          []PurchaseBookRow `json:"rows"`
	TotalPurchase decimal.Decimal   `json:"total_purchase"`
	TotalReturns  decimal.Decimal   `json:"total_returns"`
	NetPurchase   decimal.Decimal   `json:"net_purchase"`
	Warnings      []string          `json:"warnings"`
}

// PurchaseBookServicer lists a month of purchases.
type PurchaseBookServicer interface {
	PurchaseBook(ym period.YearMonth) (*PurchaseBook, error)
}

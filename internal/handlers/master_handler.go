package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"ledgerbook/internal/accounting"
	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/services"
	"ledgerbook/internal/validator"
)

// MasterHandler handles the chart of accounts and the other master data:
// companies, fiscal periods, opening balances and fixed assets.
type MasterHandler struct {
	masterService services.MasterServicer
}

// NewMasterHandler creates a new MasterHandler.
func NewMasterHandler(masterService services.MasterServicer) *MasterHandler {
	return &MasterHandler{masterService: masterService}
}

// CreateAccountRequest represents the request payload for creating an account.
type CreateAccountRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=100"`
	Type             string `json:"type" binding:"required,account_type"`
	IsDefault        bool   `json:"is_default"`
	IsAdjustmentOnly bool   `json:"is_adjustment_only"`
}

// UpdateAccountRequest represents the request payload for updating an account.
type UpdateAccountRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=1,max=100"`
	Type             *string `json:"type" binding:"omitempty,account_type"`
	IsDefault        *bool   `json:"is_default"`
	IsAdjustmentOnly *bool   `json:"is_adjustment_only"`
}

// CreateCompanyRequest represents the request payload for creating a company.
type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// CreateFiscalPeriodRequest represents the request payload for creating a fiscal period.
type CreateFiscalPeriodRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	StartDate string `json:"start_date" binding:"required,iso_date"`
	EndDate   string `json:"end_date" binding:"required,iso_date"`
}

// UpdateFiscalPeriodRequest closes or reopens a fiscal period.
type UpdateFiscalPeriodRequest struct {
	IsClosed *bool `json:"is_closed" binding:"required"`
}

// SetInitialBalanceRequest represents the request payload for an opening balance.
type SetInitialBalanceRequest struct {
	AccountID string `json:"account_id" binding:"required,uuid"`
	Balance   string `json:"balance" binding:"required,decimal"`
	StartDate string `json:"start_date" binding:"required,iso_date"`
}

// CreateAccount handles the creation of a new account
// @Summary     Create an account
// @Description Add an account to the chart of accounts
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAccountRequest true "Account details"
// @Success     201 {object} models.Account "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate account name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [post]
func (h *MasterHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.masterService.CreateAccount(req.Name, accounting.AccountType(req.Type), req.IsDefault, req.IsAdjustmentOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// ListAccounts handles listing the chart of accounts
// @Summary     List accounts
// @Description List accounts ordered by type and name
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "Filter by account type (asset, liability, equity, revenue, expense)"
// @Success     200 {object} map[string][]models.Account "Accounts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [get]
func (h *MasterHandler) ListAccounts(c *gin.Context) {
	var accountType *accounting.AccountType
	if v := c.Query("type"); v != "" {
		t := accounting.AccountType(v)
		if !t.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type"))
			return
		}
		accountType = &t
	}

	accounts, err := h.masterService.ListAccounts(accountType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// UpdateAccount handles partial updates of an account
// @Summary     Update an account
// @Description Update an account's name, type or flags
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Account ID"
// @Param       request body UpdateAccountRequest true "Fields to update"
// @Success     200 {object} models.Account "Account updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     409 {object} ErrorResponse "Duplicate account name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id} [put]
func (h *MasterHandler) UpdateAccount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.AccountUpdateFields{
		Name:             req.Name,
		IsDefault:        req.IsDefault,
		IsAdjustmentOnly: req.IsAdjustmentOnly,
	}
	if req.Type != nil {
		t := accounting.AccountType(*req.Type)
		fields.Type = &t
	}

	account, err := h.masterService.UpdateAccount(id, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// CreateCompany handles the creation of a trading partner
// @Summary     Create a company
// @Tags        companies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCompanyRequest true "Company details"
// @Success     201 {object} models.Company "Company created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies [post]
func (h *MasterHandler) CreateCompany(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	company, err := h.masterService.CreateCompany(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"company": company})
}

// ListCompanies handles listing companies
// @Summary     List companies
// @Tags        companies
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 200)"
// @Param       order     query string false "Name order: asc or desc (default asc)"
// @Success     200 {object} pagination.PageResponse[models.Company] "Paginated companies"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /companies [get]
func (h *MasterHandler) ListCompanies(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.masterService.ListCompanies(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateFiscalPeriod handles the creation of a fiscal period
// @Summary     Create a fiscal period
// @Tags        fiscal-periods
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateFiscalPeriodRequest true "Fiscal period details"
// @Success     201 {object} models.FiscalPeriod "Fiscal period created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fiscal-periods [post]
func (h *MasterHandler) CreateFiscalPeriod(c *gin.Context) {
	var req CreateFiscalPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	start, _ := validator.ParseDate(req.StartDate)
	end, _ := validator.ParseDate(req.EndDate)

	fp, err := h.masterService.CreateFiscalPeriod(req.Name, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"fiscal_period": fp})
}

// ListFiscalPeriods handles listing fiscal periods
// @Summary     List fiscal periods
// @Description List fiscal periods, newest first
// @Tags        fiscal-periods
// @Produce     json
// @Security    BearerAuth
// @Param       open query bool false "Only periods that are not closed"
// @Success     200 {object} map[string][]models.FiscalPeriod "Fiscal periods"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fiscal-periods [get]
func (h *MasterHandler) ListFiscalPeriods(c *gin.Context) {
	openOnly := false
	if v := c.Query("open"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid open flag"))
			return
		}
		openOnly = b
	}

	periods, err := h.masterService.ListFiscalPeriods(openOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fiscal_periods": periods})
}

// UpdateFiscalPeriod handles closing or reopening a fiscal period
// @Summary     Close or reopen a fiscal period
// @Description A closed period accepts no further adjustment entries
// @Tags        fiscal-periods
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                    true "Fiscal period ID"
// @Param       request body UpdateFiscalPeriodRequest true "Closed flag"
// @Success     200 {object} models.FiscalPeriod "Fiscal period updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fiscal period not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fiscal-periods/{id} [put]
func (h *MasterHandler) UpdateFiscalPeriod(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateFiscalPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fp, err := h.masterService.SetFiscalPeriodClosed(id, *req.IsClosed)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fiscal_period": fp})
}

// SetInitialBalance handles setting an account's opening balance
// @Summary     Set an opening balance
// @Description Create or replace the opening balance cash books roll forward from
// @Tags        initial-balances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetInitialBalanceRequest true "Opening balance"
// @Success     200 {object} models.InitialBalance "Opening balance saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /initial-balances [put]
func (h *MasterHandler) SetInitialBalance(c *gin.Context) {
	var req SetInitialBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid balance"))
		return
	}
	start, _ := validator.ParseDate(req.StartDate)

	ib, err := h.masterService.SetInitialBalance(req.AccountID, balance, start)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"initial_balance": ib})
}

// ListFixedAssets handles listing registered fixed assets
// @Summary     List fixed assets
// @Tags        fixed-assets
// @Produce     json
// @Security    BearerAuth
// @Param       status query string false "Filter by status (active, disposed)"
// @Success     200 {object} map[string][]models.FixedAsset "Fixed assets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fixed-assets [get]
func (h *MasterHandler) ListFixedAssets(c *gin.Context) {
	var status *models.FixedAssetStatus
	if v := c.Query("status"); v != "" {
		s := models.FixedAssetStatus(v)
		if s != models.FixedAssetActive && s != models.FixedAssetDisposed {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid status, must be active or disposed"))
			return
		}
		status = &s
	}

	assets, err := h.masterService.ListFixedAssets(status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fixed_assets": assets})
}

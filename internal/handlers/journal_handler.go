package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/models"
	"ledgerbook/internal/pagination"
	"ledgerbook/internal/services"
	"ledgerbook/internal/validator"
)

// JournalHandler handles journal entry requests.
type JournalHandler struct {
	journalService services.JournalServicer
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalService services.JournalServicer) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// JournalEntryRequest represents the request payload for posting or
// correcting a journal entry. Amounts are decimal strings; blank lines
// are ignored.
type JournalEntryRequest struct {
	Date            string                         `json:"date" binding:"omitempty,iso_date" example:"2025-07-01"`
	Summary         string                         `json:"summary" binding:"max=500"`
	EntryType       string                         `json:"entry_type" binding:"omitempty,entry_type"`
	CompanyID       *string                        `json:"company_id" binding:"omitempty,uuid"`
	FiscalPeriodID  *string                        `json:"fiscal_period_id" binding:"omitempty,uuid"`
	Debits          []services.LineInput           `json:"debits"`
	Credits         []services.LineInput           `json:"credits"`
	FixedAsset      *services.FixedAssetInput      `json:"fixed_asset"`
	PurchaseDetails []services.PurchaseDetailInput `json:"purchase_details"`
}

// AdjustmentEntryRequest represents the request payload for a year-end
// adjustment. The entry is dated on the last day of the fiscal period.
type AdjustmentEntryRequest struct {
	Summary            string               `json:"summary" binding:"max=500"`
	CompanyID          *string              `json:"company_id" binding:"omitempty,uuid"`
	FiscalPeriodID     string               `json:"fiscal_period_id" binding:"required,uuid"`
	Debits             []services.LineInput `json:"debits"`
	Credits            []services.LineInput `json:"credits"`
	RecordDepreciation bool                 `json:"record_depreciation"`
}

func (r *JournalEntryRequest) toInput(actor string) services.JournalEntryInput {
	var date time.Time
	if r.Date != "" {
		date, _ = validator.ParseDate(r.Date)
	}
	return services.JournalEntryInput{
		Date:            date,
		Summary:         r.Summary,
		EntryType:       models.EntryType(r.EntryType),
		CompanyID:       r.CompanyID,
		FiscalPeriodID:  r.FiscalPeriodID,
		Debits:          r.Debits,
		Credits:         r.Credits,
		FixedAsset:      r.FixedAsset,
		PurchaseDetails: r.PurchaseDetails,
		Actor:           actor,
	}
}

// CreateJournalEntry handles posting a new journal entry
// @Summary     Post a journal entry
// @Description Record a balanced entry. Total debits must equal total credits; nothing is stored otherwise.
// @Tags        journal-entries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body JournalEntryRequest true "Journal entry"
// @Success     201 {object} models.JournalEntry "Entry posted"
// @Failure     400 {object} ErrorResponse "Invalid or unbalanced entry"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account, company or fiscal period not found"
// @Failure     409 {object} ErrorResponse "Duplicate asset number"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /journal-entries [post]
func (h *JournalHandler) CreateJournalEntry(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.journalService.CreateJournalEntry(req.toInput(actor))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"journal_entry": entry})
}

// CreateAdjustmentEntry handles posting a year-end adjustment
// @Summary     Post an adjustment entry
// @Description Record a year-end adjustment dated on the fiscal period's last day. With record_depreciation the period's depreciation histories are written in the same transaction.
// @Tags        journal-entries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AdjustmentEntryRequest true "Adjustment entry"
// @Success     201 {object} models.JournalEntry "Entry posted"
// @Failure     400 {object} ErrorResponse "Invalid or unbalanced entry, or closed period"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account or fiscal period not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /adjustment-entries [post]
func (h *JournalHandler) CreateAdjustmentEntry(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AdjustmentEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	periodID := req.FiscalPeriodID
	entry, err := h.journalService.CreateAdjustmentEntry(services.JournalEntryInput{
		Summary:            req.Summary,
		EntryType:          models.EntryTypeAdjustment,
		CompanyID:          req.CompanyID,
		FiscalPeriodID:     &periodID,
		Debits:             req.Debits,
		Credits:            req.Credits,
		Actor:              actor,
		RecordDepreciation: req.RecordDepreciation,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"journal_entry": entry})
}

// ListJournalEntries handles listing journal entries
// @Summary     List journal entries
// @Description List entries newest first, with optional filters
// @Tags        journal-entries
// @Produce     json
// @Security    BearerAuth
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 50, max 200)"
// @Param       order      query string false "Date order: asc or desc (default desc)"
// @Param       from_date  query string false "Filter by start date (YYYY-MM-DD)"
// @Param       to_date    query string false "Filter by end date (YYYY-MM-DD)"
// @Param       entry_type query string false "Filter by entry type (normal, adjustment, closing)"
// @Param       company_id query string false "Filter by company ID"
// @Param       account_id query string false "Only entries with a line on this account"
// @Success     200 {object} pagination.PageResponse[models.JournalEntry] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /journal-entries [get]
func (h *JournalHandler) ListJournalEntries(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseJournalFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.journalService.ListJournalEntries(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseJournalFilter(c *gin.Context) (services.JournalEntryFilter, error) {
	var filter services.JournalEntryFilter
	var err error

	if filter.FromDate, err = optionalDateQuery(c, "from_date"); err != nil {
		return filter, err
	}
	if filter.ToDate, err = optionalDateQuery(c, "to_date"); err != nil {
		return filter, err
	}
	if v := c.Query("entry_type"); v != "" {
		entryType := models.EntryType(v)
		switch entryType {
		case models.EntryTypeNormal, models.EntryTypeAdjustment, models.EntryTypeClosing:
			filter.EntryType = &entryType
		default:
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid entry_type, must be normal, adjustment, or closing")
		}
	}
	if filter.CompanyID, err = optionalUUIDQuery(c, "company_id"); err != nil {
		return filter, err
	}
	if filter.AccountID, err = optionalUUIDQuery(c, "account_id"); err != nil {
		return filter, err
	}
	return filter, nil
}

// GetJournalEntry handles the retrieval of a journal entry
// @Summary     Get journal entry by ID
// @Tags        journal-entries
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Journal entry ID"
// @Success     200 {object} models.JournalEntry "Entry with its lines"
// @Failure     400 {object} ErrorResponse "Invalid journal entry ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Journal entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /journal-entries/{id} [get]
func (h *JournalHandler) GetJournalEntry(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.journalService.GetJournalEntry(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"journal_entry": entry})
}

// UpdateJournalEntry handles correcting a journal entry
// @Summary     Correct a journal entry
// @Description Replace an entry's header and all of its lines. The same balance rules apply as when posting.
// @Tags        journal-entries
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Journal entry ID"
// @Param       request body JournalEntryRequest true "Corrected entry"
// @Success     200 {object} models.JournalEntry "Entry updated"
// @Failure     400 {object} ErrorResponse "Invalid or unbalanced entry"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Journal entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /journal-entries/{id} [put]
func (h *JournalHandler) UpdateJournalEntry(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req JournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.journalService.UpdateJournalEntry(id, req.toInput(actor))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"journal_entry": entry})
}

// DeleteJournalEntry handles removing a journal entry
// @Summary     Delete a journal entry
// @Description Delete an entry with its lines. Fixed assets and depreciation records that reference it are kept and unlinked.
// @Tags        journal-entries
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Journal entry ID"
// @Success     200 {object} MessageResponse "Entry deleted"
// @Failure     400 {object} ErrorResponse "Invalid journal entry ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Journal entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /journal-entries/{id} [delete]
func (h *JournalHandler) DeleteJournalEntry(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.journalService.DeleteJournalEntry(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Journal entry deleted successfully"})
}

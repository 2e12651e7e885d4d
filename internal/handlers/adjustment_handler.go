package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/services"
)

// AdjustmentHandler handles year-end adjustment references.
type AdjustmentHandler struct {
	adjustmentService services.AdjustmentServicer
}

// NewAdjustmentHandler creates a new AdjustmentHandler.
func NewAdjustmentHandler(adjustmentService services.AdjustmentServicer) *AdjustmentHandler {
	return &AdjustmentHandler{adjustmentService: adjustmentService}
}

// RecordDepreciationRequest links the period's depreciation to the
// adjustment entry that books it.
type RecordDepreciationRequest struct {
	JournalEntryID string  `json:"journal_entry_id" binding:"required,uuid"`
	CompanyID      *string `json:"company_id" binding:"omitempty,uuid"`
}

// RecordDepreciationResponse reports how many assets were recorded.
type RecordDepreciationResponse struct {
	Recorded int `json:"recorded"`
}

// GetAdjustmentInfo handles the adjustment references of a fiscal period
// @Summary     Year-end adjustment references
// @Description Straight-line depreciation of every active asset and the allowance for doubtful accounts due at period end
// @Tags        adjustments
// @Produce     json
// @Security    BearerAuth
// @Param       period_id  path  string true  "Fiscal period ID"
// @Param       company_id query string false "Limit to one company"
// @Success     200 {object} services.AdjustmentInfo "Adjustment references"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fiscal period not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /adjustments/{period_id} [get]
func (h *AdjustmentHandler) GetAdjustmentInfo(c *gin.Context) {
	periodID, err := parsePathID(c, "period_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	companyID, err := optionalUUIDQuery(c, "company_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	info, err := h.adjustmentService.AdjustmentInfo(periodID, companyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// RecordDepreciation handles writing the period's depreciation histories
// @Summary     Record depreciation
// @Description Record this period's depreciation for every asset not yet recorded. Repeating the call records nothing.
// @Tags        adjustments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       period_id path string                    true "Fiscal period ID"
// @Param       request   body RecordDepreciationRequest true "Booking entry"
// @Success     200 {object} RecordDepreciationResponse "Assets recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Fiscal period or journal entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /adjustments/{period_id}/depreciation [post]
func (h *AdjustmentHandler) RecordDepreciation(c *gin.Context) {
	periodID, err := parsePathID(c, "period_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordDepreciationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recorded, err := h.adjustmentService.RecordDepreciation(periodID, req.JournalEntryID, req.CompanyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, RecordDepreciationResponse{Recorded: recorded})
}

package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/middleware"
	"ledgerbook/internal/period"
	"ledgerbook/internal/uuid"
	"ledgerbook/internal/validator"
)

// ErrorDetail is the body of an error response.
type ErrorDetail struct {
	Code    string `json:"code" example:"UNBALANCED_ENTRY"`
	Message string `json:"message" example:"Total debits must equal total credits"`
}

// ErrorResponse wraps every error returned by the API.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// getActor returns the authenticated subject recorded on postings.
// Returns ErrUnauthorized if the auth middleware did not run.
func getActor(c *gin.Context) (string, error) {
	actor := c.GetString(middleware.ActorKey)
	if actor == "" {
		return "", apperrors.ErrUnauthorized
	}
	return actor, nil
}

// parsePathID validates a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// optionalUUIDQuery returns a pointer to a UUID query parameter, or nil
// when it is absent.
func optionalUUIDQuery(c *gin.Context, key string) (*string, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	if !uuid.IsValid(v) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+key)
	}
	return &v, nil
}

// optionalDateQuery parses a YYYY-MM-DD query parameter.
func optionalDateQuery(c *gin.Context, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := validator.ParseDate(v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+key+" format, use YYYY-MM-DD")
	}
	return &t, nil
}

// yearMonthQuery reads ?year=&month=, defaulting to the current month.
func yearMonthQuery(c *gin.Context, now time.Time) (period.YearMonth, error) {
	ym := period.Of(now)
	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < 1 {
			return ym, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year")
		}
		ym.Year = year
	}
	if v := c.Query("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			return ym, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid month")
		}
		ym.Month = month
	}
	if !ym.Valid() {
		return ym, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	return ym, nil
}

// fiscalYearQuery reads ?year=, defaulting to the fiscal year containing now.
func fiscalYearQuery(c *gin.Context, now time.Time, startMonth int) (int, error) {
	v := c.Query("year")
	if v == "" {
		return currentFiscalYear(now, startMonth), nil
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 1 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year")
	}
	return year, nil
}

// currentFiscalYear returns the year in which the fiscal year containing
// now started.
func currentFiscalYear(now time.Time, startMonth int) int {
	year := now.Year()
	if int(now.Month()) < startMonth {
		year--
	}
	return year
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	log := logger.Named("http")
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			log.Errorw("app error",
				"request_id", middleware.RequestID(c),
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	log.Errorw("unexpected error",
		"request_id", middleware.RequestID(c),
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}

package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rsahay/tdsbook-backend/internal/app/service"
	apperrors "github.com/rsahay/tdsbook-backend/internal/errors"
	"github.com/rsahay/tdsbook-backend/internal/middleware"
)

type ChallanController struct {
	challanService service.ChallanService
}

func NewChallanController(challanService service.ChallanService) *ChallanController {
	return &ChallanController{
		challanService: challanService,
	}
}

type ReconcileRequest struct {
	Year        int    `json:"year" binding:"required"`
	Month       int    `json:"month" binding:"required"`
	ChallanNo   string `json:"challan_no" binding:"required"`
	BSRCode     string `json:"bsr_code"`
	PaymentDate string `json:"payment_date" binding:"required"`
}

// PendingPeriods lists every month with unreconciled transactions
// GET /api/v1/challans/pending
func (ctrl *ChallanController) PendingPeriods(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	periods, err := ctrl.challanService.PendingPeriods()
	if err != nil {
		log.Error("Failed to list pending periods", err)
		apperrors.InternalError(c, "Failed to fetch pending periods")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"periods": periods,
		"count":   len(periods),
	})
}

// PendingSummary returns the pending aggregate for one month
// GET /api/v1/challans/pending/:year/:month
func (ctrl *ChallanController) PendingSummary(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	year, err1 := parseIntParam(c.Param("year"))
	month, err2 := parseIntParam(c.Param("month"))
	if err1 != nil || err2 != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidPeriod, "Year and month must be numeric")
		return
	}

	summary, err := ctrl.challanService.PendingSummary(year, month)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidPeriod, "Month must be between 1 and 12")
			return
		}
		log.Error("Failed to compute pending summary", err, map[string]interface{}{
			"year":  year,
			"month": month,
		})
		apperrors.InternalError(c, "Failed to compute the pending summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
	})
}

// Reconcile files a challan for a period and settles its transactions
// POST /api/v1/challans
func (ctrl *ChallanController) Reconcile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid reconcile payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Year, month, challan number and payment date are required")
		return
	}

	paymentDate, err := time.Parse(invoiceDateLayout, req.PaymentDate)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidDate, "Payment date must be in YYYY-MM-DD format")
		return
	}

	challan, err := ctrl.challanService.Reconcile(service.ReconcileInput{
		Year:        req.Year,
		Month:       req.Month,
		ChallanNo:   req.ChallanNo,
		BSRCode:     req.BSRCode,
		PaymentDate: paymentDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPeriod):
			apperrors.BadRequest(c, apperrors.ValidationInvalidPeriod, "Month must be between 1 and 12")
		case errors.Is(err, service.ErrMissingChallanNo):
			apperrors.BadRequest(c, apperrors.ChallanMissingReceiptNo, "Challan number is required")
		case errors.Is(err, service.ErrPeriodAlreadyReconciled):
			apperrors.Conflict(c, apperrors.ChallanPeriodFiled, "A challan was already filed for this period")
		default:
			log.Error("Failed to reconcile period", err, map[string]interface{}{
				"year":  req.Year,
				"month": req.Month,
			})
			info := apperrors.ParseError(err, "challan")
			apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		}
		return
	}

	log.Info("Challan filed", map[string]interface{}{
		"challan_id": challan.ID,
		"year":       challan.Year,
		"month":      challan.Month,
		"total_paid": challan.TotalPaid,
	})
	c.JSON(http.StatusCreated, gin.H{
		"challan": challan,
	})
}

// List returns filed challans ordered by period
// GET /api/v1/challans
func (ctrl *ChallanController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	challans, err := ctrl.challanService.ListChallans()
	if err != nil {
		log.Error("Failed to list challans", err)
		apperrors.InternalError(c, "Failed to fetch challans")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"challans": challans,
		"count":    len(challans),
	})
}

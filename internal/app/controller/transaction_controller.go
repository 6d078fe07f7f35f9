package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rsahay/tdsbook-backend/internal/app/service"
	apperrors "github.com/rsahay/tdsbook-backend/internal/errors"
	"github.com/rsahay/tdsbook-backend/internal/middleware"
	"github.com/rsahay/tdsbook-backend/internal/storage"
	"github.com/rsahay/tdsbook-backend/pkg/tds"
)

const invoiceDateLayout = "2006-01-02"

type TransactionController struct {
	transactionService service.TransactionService
	documents          storage.DocumentStore
	maxUploadBytes     int64
}

func NewTransactionController(
	transactionService service.TransactionService,
	documents storage.DocumentStore,
	maxUploadMB int64,
) *TransactionController {
	return &TransactionController{
		transactionService: transactionService,
		documents:          documents,
		maxUploadBytes:     maxUploadMB * 1024 * 1024,
	}
}

type CreateTransactionRequest struct {
	PAN              string   `json:"pan" binding:"required"`
	Name             string   `json:"name" binding:"required"`
	Category         string   `json:"category" binding:"required"`
	Section          string   `json:"section" binding:"required"`
	InvoiceDate      string   `json:"invoice_date" binding:"required"`
	InvoiceAmount    *float64 `json:"invoice_amount" binding:"required"`
	AssessableAmount *float64 `json:"assessable_amount" binding:"required"`
	PaymentMode      string   `json:"payment_mode"`
	PaymentRef       string   `json:"payment_ref"`
}

// Create records a transaction entered by the administrator
// POST /api/v1/transactions
func (ctrl *TransactionController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid transaction payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A required field is missing or malformed")
		return
	}

	invoiceDate, err := time.Parse(invoiceDateLayout, req.InvoiceDate)
	if err != nil {
		log.Warn("Invalid invoice date", map[string]interface{}{
			"invoice_date": req.InvoiceDate,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidDate, "Invoice date must be in YYYY-MM-DD format")
		return
	}

	transaction, err := ctrl.transactionService.Record(service.RecordTransactionInput{
		PAN:              req.PAN,
		Name:             req.Name,
		Category:         tds.DeducteeCategory(req.Category),
		Section:          tds.Section(req.Section),
		InvoiceDate:      invoiceDate,
		InvoiceAmount:    *req.InvoiceAmount,
		AssessableAmount: *req.AssessableAmount,
		PaymentMode:      req.PaymentMode,
		PaymentRef:       req.PaymentRef,
	})
	if err != nil {
		ctrl.respondRecordError(c, err)
		return
	}

	log.Info("Transaction created", map[string]interface{}{
		"transaction_id": transaction.ID,
		"total_tds":      transaction.TotalTDS,
	})
	c.JSON(http.StatusCreated, gin.H{
		"transaction": transaction,
	})
}

// ClientSubmit records a transaction submitted by a client, optionally
// with a supporting document
// POST /api/v1/client/transactions  (multipart/form-data)
func (ctrl *TransactionController) ClientSubmit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	req := CreateTransactionRequest{
		PAN:         c.PostForm("pan"),
		Name:        c.PostForm("name"),
		Category:    c.PostForm("category"),
		Section:     c.PostForm("section"),
		InvoiceDate: c.PostForm("invoice_date"),
		PaymentMode: c.PostForm("payment_mode"),
		PaymentRef:  c.PostForm("payment_ref"),
	}
	if req.PAN == "" || req.Name == "" || req.Category == "" || req.Section == "" || req.InvoiceDate == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "PAN, name, category, section and invoice date are required")
		return
	}

	invoiceAmount, err1 := parseAmount(c.PostForm("invoice_amount"))
	assessableAmount, err2 := parseAmount(c.PostForm("assessable_amount"))
	if err1 != nil || err2 != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidAmount, "Amounts must be numeric")
		return
	}

	invoiceDate, err := time.Parse(invoiceDateLayout, req.InvoiceDate)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidDate, "Invoice date must be in YYYY-MM-DD format")
		return
	}

	// The document is stored before the DB write; a validation failure
	// later leaves an orphan file but never a partial record.
	documentPath := ""
	if file, err := c.FormFile("document"); err == nil && file != nil {
		if err := storage.ValidateExtension(file.Filename); err != nil {
			log.Warn("Rejected document upload", map[string]interface{}{
				"filename": file.Filename,
			})
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only PNG, JPG, JPEG and PDF documents are allowed")
			return
		}
		if err := storage.ValidateFileSize(file.Size, ctrl.maxUploadBytes); err != nil {
			apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "The document exceeds the upload size limit")
			return
		}

		src, err := file.Open()
		if err != nil {
			apperrors.InternalError(c, "Failed to read the uploaded document")
			return
		}
		defer src.Close()

		documentPath, err = ctrl.documents.Save(file.Filename, src)
		if err != nil {
			log.Error("Failed to store document", err, map[string]interface{}{
				"filename": file.Filename,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to store the uploaded document")
			return
		}
	}

	transaction, err := ctrl.transactionService.Record(service.RecordTransactionInput{
		PAN:              req.PAN,
		Name:             req.Name,
		Category:         tds.DeducteeCategory(req.Category),
		Section:          tds.Section(req.Section),
		InvoiceDate:      invoiceDate,
		InvoiceAmount:    invoiceAmount,
		AssessableAmount: assessableAmount,
		PaymentMode:      req.PaymentMode,
		PaymentRef:       req.PaymentRef,
		DocumentPath:     documentPath,
	})
	if err != nil {
		ctrl.respondRecordError(c, err)
		return
	}

	log.Info("Client transaction submitted", map[string]interface{}{
		"transaction_id": transaction.ID,
		"has_document":   documentPath != "",
	})
	c.JSON(http.StatusCreated, gin.H{
		"transaction": transaction,
	})
}

// List returns the annexure view: all transactions by invoice date
// GET /api/v1/transactions
func (ctrl *TransactionController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	transactions, err := ctrl.transactionService.ListAnnexure()
	if err != nil {
		log.Error("Failed to list transactions", err)
		apperrors.InternalError(c, "Failed to fetch transactions")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

func (ctrl *TransactionController) respondRecordError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrInvalidCategory):
		apperrors.BadRequest(c, apperrors.DeducteeInvalidCategory, "Category must be one of individual, huf, company, firm, other")
	case errors.Is(err, service.ErrInvalidAmount):
		apperrors.BadRequest(c, apperrors.ValidationInvalidAmount, "Amounts must be non-negative")
	case errors.Is(err, service.ErrMissingPAN), errors.Is(err, service.ErrMissingName):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "PAN and name are required")
	default:
		log.Error("Failed to record transaction", err)
		info := apperrors.ParseError(err, "transaction")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
	}
}

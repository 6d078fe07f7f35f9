package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rsahay/tdsbook-backend/internal/app/model"
	"github.com/rsahay/tdsbook-backend/internal/app/service"
	apperrors "github.com/rsahay/tdsbook-backend/internal/errors"
	"github.com/rsahay/tdsbook-backend/internal/middleware"
	"github.com/xuri/excelize/v2"
)

// annexureHeaders are the columns of the annexure export, in filing order.
var annexureHeaders = []string{
	"Date", "PAN", "Name", "Section", "Assessable Amount",
	"Rate", "Tax", "Cess", "Total TDS", "Payment Mode", "Payment Ref",
}

type ExportController struct {
	transactionService service.TransactionService
}

func NewExportController(transactionService service.TransactionService) *ExportController {
	return &ExportController{
		transactionService: transactionService,
	}
}

func annexureRow(t *model.Transaction) []string {
	return []string{
		t.InvoiceDate.Format("2006-01-02"),
		t.Deductee.PAN,
		t.Deductee.Name,
		string(t.Section),
		fmt.Sprintf("%.2f", t.AssessableAmount),
		fmt.Sprintf("%.2f", t.Rate),
		fmt.Sprintf("%.0f", t.Tax),
		fmt.Sprintf("%.0f", t.Cess),
		fmt.Sprintf("%.0f", t.TotalTDS),
		t.PaymentMode,
		t.PaymentRef,
	}
}

// ExportCSV downloads the annexure as CSV
// GET /api/v1/export/csv
func (ctrl *ExportController) ExportCSV(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	transactions, err := ctrl.transactionService.ListAnnexure()
	if err != nil {
		log.Error("Failed to fetch transactions for CSV export", err)
		apperrors.InternalError(c, "Failed to export transactions")
		return
	}

	buf := new(bytes.Buffer)
	// BOM so Excel opens the file as UTF-8
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	if err := writer.Write(annexureHeaders); err != nil {
		apperrors.InternalError(c, "Failed to generate CSV")
		return
	}
	for i := range transactions {
		if err := writer.Write(annexureRow(&transactions[i])); err != nil {
			apperrors.InternalError(c, "Failed to generate CSV")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		apperrors.InternalError(c, "Failed to generate CSV")
		return
	}

	filename := fmt.Sprintf("tds_annexure_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())

	log.Info("Annexure exported as CSV", map[string]interface{}{
		"rows": len(transactions),
	})
}

// ExportXLSX downloads the annexure as a spreadsheet
// GET /api/v1/export/xlsx
func (ctrl *ExportController) ExportXLSX(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	transactions, err := ctrl.transactionService.ListAnnexure()
	if err != nil {
		log.Error("Failed to fetch transactions for XLSX export", err)
		apperrors.InternalError(c, "Failed to export transactions")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Annexure"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range annexureHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	for row := range transactions {
		for col, value := range annexureRow(&transactions[row]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Error("Failed to generate XLSX", err)
		apperrors.InternalError(c, "Failed to generate spreadsheet")
		return
	}

	filename := fmt.Sprintf("tds_annexure_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	log.Info("Annexure exported as XLSX", map[string]interface{}{
		"rows": len(transactions),
	})
}

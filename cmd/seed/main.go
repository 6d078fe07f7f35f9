// Bulk importer for opening books: reads transactions from an XLSX sheet
// and records them through the normal submission path, so rates and totals
// are computed exactly as for interactive entries.
//
// Usage: go run ./cmd/seed transactions.xlsx
//
// Expected columns, first row is the header:
//
//	PAN | Name | Category | Section | Invoice Date (2006-01-02) |
//	Invoice Amount | Assessable Amount | Payment Mode | Payment Ref
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rsahay/tdsbook-backend/config"
	"github.com/rsahay/tdsbook-backend/internal/app/repository"
	"github.com/rsahay/tdsbook-backend/internal/app/service"
	"github.com/rsahay/tdsbook-backend/internal/db"
	"github.com/rsahay/tdsbook-backend/pkg/logger"
	"github.com/rsahay/tdsbook-backend/pkg/tds"
	"github.com/xuri/excelize/v2"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: seed <transactions.xlsx>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	inputs, err := readTransactionsFromXLSX(os.Args[1])
	if err != nil {
		logger.Fatal("Failed to read XLSX file", err)
	}

	transactionRepo := repository.NewTransactionRepository(db.GetDB())
	transactionService := service.NewTransactionService(transactionRepo, db.GetDB())

	imported := 0
	for i, input := range inputs {
		if _, err := transactionService.Record(input); err != nil {
			logger.Error("Failed to import row, skipping", err, map[string]interface{}{
				"row": i + 2,
				"pan": input.PAN,
			})
			continue
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total transactions imported: %d of %d\n", imported, len(inputs))
}

func readTransactionsFromXLSX(filePath string) ([]service.RecordTransactionInput, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet has no data rows")
	}

	var inputs []service.RecordTransactionInput
	for i, row := range rows[1:] { // skip header
		if len(row) < 7 {
			return nil, fmt.Errorf("row %d: expected at least 7 columns, got %d", i+2, len(row))
		}

		invoiceDate, err := time.Parse("2006-01-02", row[4])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid invoice date %q", i+2, row[4])
		}
		invoiceAmount, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid invoice amount %q", i+2, row[5])
		}
		assessableAmount, err := strconv.ParseFloat(row[6], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid assessable amount %q", i+2, row[6])
		}

		input := service.RecordTransactionInput{
			PAN:              row[0],
			Name:             row[1],
			Category:         tds.DeducteeCategory(row[2]),
			Section:          tds.Section(row[3]),
			InvoiceDate:      invoiceDate,
			InvoiceAmount:    invoiceAmount,
			AssessableAmount: assessableAmount,
		}
		if len(row) > 7 {
			input.PaymentMode = row[7]
		}
		if len(row) > 8 {
			input.PaymentRef = row[8]
		}
		inputs = append(inputs, input)
	}

	return inputs, nil
}

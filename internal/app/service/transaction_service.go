package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rsahay/tdsbook-backend/internal/app/model"
	"github.com/rsahay/tdsbook-backend/internal/app/repository"
	"github.com/rsahay/tdsbook-backend/pkg/logger"
	"github.com/rsahay/tdsbook-backend/pkg/tds"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidCategory = errors.New("unknown deductee category")
	ErrInvalidAmount   = errors.New("amount must be non-negative")
	ErrMissingName     = errors.New("deductee name is required")
	ErrMissingPAN      = errors.New("PAN is required")
)

// RecordTransactionInput is one submitted taxable payment. DocumentPath is
// the already-stored supporting document; empty means none was uploaded and
// any existing document on the deductee is kept.
type RecordTransactionInput struct {
	PAN              string
	Name             string
	Category         tds.DeducteeCategory
	Section          tds.Section
	InvoiceDate      time.Time
	InvoiceAmount    float64
	AssessableAmount float64
	PaymentMode      string
	PaymentRef       string
	DocumentPath     string
}

type TransactionService interface {
	Record(input RecordTransactionInput) (*model.Transaction, error)
	ListAnnexure() ([]model.Transaction, error)
}

type transactionService struct {
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
}

func NewTransactionService(transactionRepo repository.TransactionRepository, db *gorm.DB) TransactionService {
	return &transactionService{
		transactionRepo: transactionRepo,
		db:              db,
	}
}

// Record runs the full submission as one unit: upsert the deductee by PAN,
// compute the withholding, and append the ledger row. Any failure rolls
// back the whole sequence; no partial deductee or transaction survives.
func (s *transactionService) Record(input RecordTransactionInput) (*model.Transaction, error) {
	pan := tds.NormalizePAN(input.PAN)
	name := strings.TrimSpace(input.Name)

	if pan == "" {
		return nil, ErrMissingPAN
	}
	if name == "" {
		return nil, ErrMissingName
	}
	if !tds.IsKnownCategory(input.Category) {
		logger.Warn("Rejecting transaction with unknown category", map[string]interface{}{
			"pan":      pan,
			"category": input.Category,
		})
		return nil, ErrInvalidCategory
	}
	if input.InvoiceAmount < 0 || input.AssessableAmount < 0 {
		return nil, ErrInvalidAmount
	}

	// A malformed PAN is not rejected: it attracts the penal rate instead.
	// An unknown section is not rejected either, it maps to 0%.
	rate := tds.RateFor(pan, input.Category, input.Section)
	breakup := tds.Compute(input.AssessableAmount, rate)

	logger.Info("Recording transaction", map[string]interface{}{
		"pan":        pan,
		"section":    input.Section,
		"assessable": input.AssessableAmount,
		"rate":       rate,
	})

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic while recording transaction, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"pan": pan,
			})
		}
	}()

	deductee, err := upsertDeductee(tx, pan, name, input.Category, input.DocumentPath)
	if err != nil {
		tx.Rollback()
		logger.Error("Failed to upsert deductee", err, map[string]interface{}{
			"pan": pan,
		})
		return nil, err
	}

	interest := 0.0 // no automatic late-payment interest accrual
	transaction := model.Transaction{
		DeducteeID:       deductee.ID,
		Section:          input.Section,
		InvoiceDate:      input.InvoiceDate,
		InvoiceAmount:    input.InvoiceAmount,
		AssessableAmount: input.AssessableAmount,
		Rate:             breakup.Rate,
		Tax:              breakup.Tax,
		Surcharge:        breakup.Surcharge,
		Cess:             breakup.Cess,
		Interest:         interest,
		TotalTDS:         breakup.Total + interest,
		PaymentMode:      input.PaymentMode,
		PaymentRef:       input.PaymentRef,
	}

	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create transaction", err, map[string]interface{}{
			"pan": pan,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit transaction record", err, map[string]interface{}{
			"pan": pan,
		})
		return nil, err
	}

	transaction.Deductee = *deductee

	logger.Info("Transaction recorded", map[string]interface{}{
		"transaction_id": transaction.ID,
		"deductee_id":    deductee.ID,
		"total_tds":      transaction.TotalTDS,
	})
	return &transaction, nil
}

// upsertDeductee finds or creates the registry row for a PAN inside the
// caller's transaction. Name and category always take the latest value;
// the document path is only replaced when a new document was supplied, so
// submissions without an upload keep the previous document on file.
func upsertDeductee(tx *gorm.DB, pan, name string, category tds.DeducteeCategory, documentPath string) (*model.Deductee, error) {
	var deductee model.Deductee
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pan = ?", pan).
		First(&deductee).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		deductee = model.Deductee{
			PAN:          pan,
			Name:         name,
			Category:     category,
			DocumentPath: documentPath,
		}
		if err := tx.Create(&deductee).Error; err != nil {
			return nil, err
		}
		logger.Debug("Deductee created", map[string]interface{}{
			"deductee_id": deductee.ID,
			"pan":         pan,
		})
		return &deductee, nil
	}
	if err != nil {
		return nil, err
	}

	deductee.Name = name
	deductee.Category = category
	if documentPath != "" {
		deductee.DocumentPath = documentPath
	}
	if err := tx.Save(&deductee).Error; err != nil {
		return nil, err
	}

	logger.Debug("Deductee updated", map[string]interface{}{
		"deductee_id": deductee.ID,
		"pan":         pan,
	})
	return &deductee, nil
}

func (s *transactionService) ListAnnexure() ([]model.Transaction, error) {
	return s.transactionRepo.FindAllOrdered()
}

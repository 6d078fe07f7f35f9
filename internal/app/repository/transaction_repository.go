package repository

import (
	"time"

	"github.com/rsahay/tdsbook-backend/internal/app/model"
	"github.com/rsahay/tdsbook-backend/pkg/logger"
	"gorm.io/gorm"
)

// PendingTotals holds the SQL aggregate over unlinked transactions of one
// period. Empty periods scan to zeros, never to an error.
type PendingTotals struct {
	TotalTax      float64
	TotalCess     float64
	TotalInterest float64
}

type TransactionRepository interface {
	FindAllOrdered() ([]model.Transaction, error)
	FindUnlinked() ([]model.Transaction, error)
	SumPending(year, month int) (PendingTotals, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// PeriodRange returns the half-open [start, end) window of a calendar month.
// Filtering on the window keeps the query portable across Postgres and the
// SQLite test database, unlike EXTRACT/strftime.
func PeriodRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// FindAllOrdered returns the full ledger ordered by invoice date, with the
// deductee preloaded. This is the annexure view.
func (r *transactionRepository) FindAllOrdered() ([]model.Transaction, error) {
	var transactions []model.Transaction
	if err := r.db.Preload("Deductee").
		Order("invoice_date ASC, id ASC").
		Find(&transactions).Error; err != nil {
		logger.Error("Failed to list transactions in database", err)
		return nil, err
	}

	logger.Debug("Transactions listed from database", map[string]interface{}{
		"count": len(transactions),
	})
	return transactions, nil
}

// FindUnlinked returns every transaction not yet settled by a challan.
func (r *transactionRepository) FindUnlinked() ([]model.Transaction, error) {
	var transactions []model.Transaction
	if err := r.db.Where("challan_id IS NULL").
		Order("invoice_date ASC, id ASC").
		Find(&transactions).Error; err != nil {
		logger.Error("Failed to list unlinked transactions in database", err)
		return nil, err
	}
	return transactions, nil
}

// SumPending aggregates tax, cess and interest over the unlinked
// transactions whose invoice date falls in the given period.
func (r *transactionRepository) SumPending(year, month int) (PendingTotals, error) {
	return SumPendingTx(r.db, year, month)
}

// SumPendingTx is SumPending against an explicit handle so the challan
// reconciliation can run the same aggregate inside its own transaction.
func SumPendingTx(db *gorm.DB, year, month int) (PendingTotals, error) {
	start, end := PeriodRange(year, month)

	var totals PendingTotals
	err := db.Model(&model.Transaction{}).
		Select("COALESCE(SUM(tax), 0) AS total_tax, COALESCE(SUM(cess), 0) AS total_cess, COALESCE(SUM(interest), 0) AS total_interest").
		Where("challan_id IS NULL AND invoice_date >= ? AND invoice_date < ?", start, end).
		Scan(&totals).Error
	if err != nil {
		logger.Error("Failed to aggregate pending transactions in database", err, map[string]interface{}{
			"year":  year,
			"month": month,
		})
		return PendingTotals{}, err
	}
	return totals, nil
}

package repository

import (
	"testing"
	"time"

	"github.com/rsahay/tdsbook-backend/internal/app/model"
	"github.com/rsahay/tdsbook-backend/internal/db"
	"github.com/rsahay/tdsbook-backend/pkg/tds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTransactionTest(t *testing.T) (*gorm.DB, TransactionRepository, *model.Deductee) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repo := NewTransactionRepository(testDB)

	deductee := &model.Deductee{
		PAN:      "AAAAA0000A",
		Name:     "Acme Traders",
		Category: tds.CategoryFirm,
	}
	testDB.Create(deductee)

	return testDB, repo, deductee
}

func makeTransaction(deducteeID uint, date time.Time, tax, cess float64) *model.Transaction {
	return &model.Transaction{
		DeducteeID:       deducteeID,
		Section:          tds.SectionContract,
		InvoiceDate:      date,
		InvoiceAmount:    tax * 50,
		AssessableAmount: tax * 50,
		Rate:             2.0,
		Tax:              tax,
		Cess:             cess,
		TotalTDS:         tax + cess,
	}
}

func TestTransactionRepository_FindAllOrdered(t *testing.T) {
	testDB, repo, deductee := setupTransactionTest(t)

	// Insert out of date order
	for _, day := range []int{20, 5, 12} {
		txn := makeTransaction(deductee.ID, time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC), 100, 4)
		require.NoError(t, testDB.Create(txn).Error)
	}

	transactions, err := repo.FindAllOrdered()
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	assert.Equal(t, 5, transactions[0].InvoiceDate.Day())
	assert.Equal(t, 12, transactions[1].InvoiceDate.Day())
	assert.Equal(t, 20, transactions[2].InvoiceDate.Day())
	// Deductee comes preloaded for the annexure
	assert.Equal(t, "AAAAA0000A", transactions[0].Deductee.PAN)
}

func TestTransactionRepository_FindUnlinked(t *testing.T) {
	testDB, repo, deductee := setupTransactionTest(t)

	challan := &model.Challan{
		Year: 2024, Month: 2,
		ChallanNo:   "CH-001",
		PaymentDate: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, testDB.Create(challan).Error)

	linked := makeTransaction(deductee.ID, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 100, 4)
	linked.ChallanID = &challan.ID
	require.NoError(t, testDB.Create(linked).Error)

	unlinked := makeTransaction(deductee.ID, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 200, 8)
	require.NoError(t, testDB.Create(unlinked).Error)

	transactions, err := repo.FindUnlinked()
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, unlinked.ID, transactions[0].ID)
}

func TestTransactionRepository_SumPending(t *testing.T) {
	testDB, repo, deductee := setupTransactionTest(t)

	require.NoError(t, testDB.Create(makeTransaction(deductee.ID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 100, 4)).Error)
	require.NoError(t, testDB.Create(makeTransaction(deductee.ID, time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC), 200, 8)).Error)
	// Different month, must not count
	require.NoError(t, testDB.Create(makeTransaction(deductee.ID, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 500, 20)).Error)

	totals, err := repo.SumPending(2024, 3)
	require.NoError(t, err)
	assert.Equal(t, 300.0, totals.TotalTax)
	assert.Equal(t, 12.0, totals.TotalCess)
	assert.Equal(t, 0.0, totals.TotalInterest)
}

func TestTransactionRepository_SumPending_ExcludesLinked(t *testing.T) {
	testDB, repo, deductee := setupTransactionTest(t)

	challan := &model.Challan{
		Year: 2024, Month: 3,
		ChallanNo:   "CH-002",
		PaymentDate: time.Date(2024, 4, 7, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, testDB.Create(challan).Error)

	linked := makeTransaction(deductee.ID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 100, 4)
	linked.ChallanID = &challan.ID
	require.NoError(t, testDB.Create(linked).Error)
	require.NoError(t, testDB.Create(makeTransaction(deductee.ID, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 200, 8)).Error)

	totals, err := repo.SumPending(2024, 3)
	require.NoError(t, err)
	assert.Equal(t, 200.0, totals.TotalTax)
	assert.Equal(t, 8.0, totals.TotalCess)
}

func TestTransactionRepository_SumPending_EmptyPeriodIsZero(t *testing.T) {
	_, repo, _ := setupTransactionTest(t)

	totals, err := repo.SumPending(2019, 6)
	require.NoError(t, err)
	assert.Equal(t, PendingTotals{}, totals)
}

func TestPeriodRange(t *testing.T) {
	start, end := PeriodRange(2024, 12)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

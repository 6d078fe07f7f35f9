package service

import (
	"testing"
	"time"

	"github.com/rsahay/tdsbook-backend/internal/app/model"
	"github.com/rsahay/tdsbook-backend/internal/app/repository"
	"github.com/rsahay/tdsbook-backend/internal/db"
	"github.com/rsahay/tdsbook-backend/pkg/tds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTransactionServiceTest(t *testing.T) (*gorm.DB, TransactionService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	transactionRepo := repository.NewTransactionRepository(testDB)
	return testDB, NewTransactionService(transactionRepo, testDB)
}

func baseInput() RecordTransactionInput {
	return RecordTransactionInput{
		PAN:              "AAAAA0000A",
		Name:             "Ravi Kumar",
		Category:         tds.CategoryIndividual,
		Section:          tds.SectionContract,
		InvoiceDate:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		InvoiceAmount:    10000,
		AssessableAmount: 10000,
		PaymentMode:      "NEFT",
		PaymentRef:       "INV-42",
	}
}

func TestTransactionService_Record_ContractIndividual(t *testing.T) {
	_, svc := setupTransactionServiceTest(t)

	txn, err := svc.Record(baseInput())
	require.NoError(t, err)

	assert.Equal(t, 1.0, txn.Rate)
	assert.Equal(t, 100.0, txn.Tax)
	assert.Equal(t, 0.0, txn.Surcharge)
	assert.Equal(t, 4.0, txn.Cess)
	assert.Equal(t, 0.0, txn.Interest)
	assert.Equal(t, 104.0, txn.TotalTDS)
	assert.Nil(t, txn.ChallanID)
	assert.Equal(t, "AAAAA0000A", txn.Deductee.PAN)
}

func TestTransactionService_Record_MalformedPANPenalRate(t *testing.T) {
	_, svc := setupTransactionServiceTest(t)

	input := baseInput()
	input.PAN = "BAD"
	input.AssessableAmount = 5000
	input.InvoiceAmount = 5000

	txn, err := svc.Record(input)
	require.NoError(t, err)

	// Malformed PAN is accepted and charged at the penal rate
	assert.Equal(t, 20.0, txn.Rate)
	assert.Equal(t, 1000.0, txn.Tax)
	assert.Equal(t, 40.0, txn.Cess)
	assert.Equal(t, 1040.0, txn.TotalTDS)
}

func TestTransactionService_Record_UnknownSectionZeroRate(t *testing.T) {
	_, svc := setupTransactionServiceTest(t)

	input := baseInput()
	input.Section = tds.Section("195")

	txn, err := svc.Record(input)
	require.NoError(t, err)
	assert.Equal(t, 0.0, txn.Rate)
	assert.Equal(t, 0.0, txn.TotalTDS)
}

func TestTransactionService_Record_NormalizesPAN(t *testing.T) {
	testDB, svc := setupTransactionServiceTest(t)

	input := baseInput()
	input.PAN = " aaaaa0000a "
	_, err := svc.Record(input)
	require.NoError(t, err)

	var deductee model.Deductee
	require.NoError(t, testDB.Where("pan = ?", "AAAAA0000A").First(&deductee).Error)
}

func TestTransactionService_Record_UpsertIsIdempotent(t *testing.T) {
	testDB, svc := setupTransactionServiceTest(t)

	_, err := svc.Record(baseInput())
	require.NoError(t, err)
	_, err = svc.Record(baseInput())
	require.NoError(t, err)

	var count int64
	testDB.Model(&model.Deductee{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var deductee model.Deductee
	require.NoError(t, testDB.Where("pan = ?", "AAAAA0000A").First(&deductee).Error)
	assert.Equal(t, "Ravi Kumar", deductee.Name)
	assert.Equal(t, tds.CategoryIndividual, deductee.Category)

	var txnCount int64
	testDB.Model(&model.Transaction{}).Count(&txnCount)
	assert.Equal(t, int64(2), txnCount)
}

func TestTransactionService_Record_LastWriteWins(t *testing.T) {
	testDB, svc := setupTransactionServiceTest(t)

	_, err := svc.Record(baseInput())
	require.NoError(t, err)

	input := baseInput()
	input.Name = "Ravi Kumar & Sons"
	input.Category = tds.CategoryFirm
	_, err = svc.Record(input)
	require.NoError(t, err)

	var deductee model.Deductee
	require.NoError(t, testDB.Where("pan = ?", "AAAAA0000A").First(&deductee).Error)
	assert.Equal(t, "Ravi Kumar & Sons", deductee.Name)
	assert.Equal(t, tds.CategoryFirm, deductee.Category)
}

func TestTransactionService_Record_DocumentPreservedWhenAbsent(t *testing.T) {
	testDB, svc := setupTransactionServiceTest(t)

	input := baseInput()
	input.DocumentPath = "/uploads/documents/first.pdf"
	_, err := svc.Record(input)
	require.NoError(t, err)

	// Submission without an upload keeps the prior document
	_, err = svc.Record(baseInput())
	require.NoError(t, err)

	var deductee model.Deductee
	require.NoError(t, testDB.Where("pan = ?", "AAAAA0000A").First(&deductee).Error)
	assert.Equal(t, "/uploads/documents/first.pdf", deductee.DocumentPath)

	// A fresh upload replaces it
	input.DocumentPath = "/uploads/documents/second.pdf"
	_, err = svc.Record(input)
	require.NoError(t, err)
	require.NoError(t, testDB.Where("pan = ?", "AAAAA0000A").First(&deductee).Error)
	assert.Equal(t, "/uploads/documents/second.pdf", deductee.DocumentPath)
}

func TestTransactionService_Record_RejectsBadInput(t *testing.T) {
	testDB, svc := setupTransactionServiceTest(t)

	tests := []struct {
		name    string
		mutate  func(*RecordTransactionInput)
		wantErr error
	}{
		{"unknown category", func(i *RecordTransactionInput) { i.Category = "trust" }, ErrInvalidCategory},
		{"negative assessable", func(i *RecordTransactionInput) { i.AssessableAmount = -1 }, ErrInvalidAmount},
		{"negative invoice", func(i *RecordTransactionInput) { i.InvoiceAmount = -100 }, ErrInvalidAmount},
		{"blank name", func(i *RecordTransactionInput) { i.Name = "   " }, ErrMissingName},
		{"blank pan", func(i *RecordTransactionInput) { i.PAN = "" }, ErrMissingPAN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseInput()
			tt.mutate(&input)

			_, err := svc.Record(input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Nothing may have been persisted by the rejected submissions
	var deducteeCount, txnCount int64
	testDB.Model(&model.Deductee{}).Count(&deducteeCount)
	testDB.Model(&model.Transaction{}).Count(&txnCount)
	assert.Zero(t, deducteeCount)
	assert.Zero(t, txnCount)
}

func TestTransactionService_ListAnnexure(t *testing.T) {
	_, svc := setupTransactionServiceTest(t)

	later := baseInput()
	later.InvoiceDate = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Record(later)
	require.NoError(t, err)
	_, err = svc.Record(baseInput())
	require.NoError(t, err)

	transactions, err := svc.ListAnnexure()
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.True(t, transactions[0].InvoiceDate.Before(transactions[1].InvoiceDate))
}

package repository

import (
	"testing"

	"github.com/rsahay/tdsbook-backend/internal/app/model"
	"github.com/rsahay/tdsbook-backend/internal/db"
	"github.com/rsahay/tdsbook-backend/pkg/tds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDeducteeTest(t *testing.T) (*gorm.DB, DeducteeRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB, NewDeducteeRepository(testDB)
}

func TestDeducteeRepository_FindByPAN(t *testing.T) {
	testDB, repo := setupDeducteeTest(t)

	deductee := &model.Deductee{
		PAN:      "AAAAA0000A",
		Name:     "Acme Traders",
		Category: tds.CategoryFirm,
	}
	require.NoError(t, testDB.Create(deductee).Error)

	found, err := repo.FindByPAN("AAAAA0000A")
	require.NoError(t, err)
	assert.Equal(t, deductee.ID, found.ID)
	assert.Equal(t, "Acme Traders", found.Name)

	_, err = repo.FindByPAN("ZZZZZ9999Z")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeducteeRepository_FindAll(t *testing.T) {
	testDB, repo := setupDeducteeTest(t)

	require.NoError(t, testDB.Create(&model.Deductee{PAN: "BBBBB1111B", Name: "Zenith Co", Category: tds.CategoryCompany}).Error)
	require.NoError(t, testDB.Create(&model.Deductee{PAN: "AAAAA0000A", Name: "Acme Traders", Category: tds.CategoryFirm}).Error)

	deductees, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, deductees, 2)
	// Ordered by name
	assert.Equal(t, "Acme Traders", deductees[0].Name)
	assert.Equal(t, "Zenith Co", deductees[1].Name)
}

func TestDeducteeRepository_PANIsUnique(t *testing.T) {
	testDB, _ := setupDeducteeTest(t)

	require.NoError(t, testDB.Create(&model.Deductee{PAN: "AAAAA0000A", Name: "First", Category: tds.CategoryOther}).Error)
	err := testDB.Create(&model.Deductee{PAN: "AAAAA0000A", Name: "Second", Category: tds.CategoryOther}).Error
	assert.Error(t, err)
}

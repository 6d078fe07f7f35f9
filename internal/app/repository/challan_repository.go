package repository

import (
	"github.com/rsahay/tdsbook-backend/internal/app/model"
	"github.com/rsahay/tdsbook-backend/pkg/logger"
	"gorm.io/gorm"
)

type ChallanRepository interface {
	FindByID(id uint) (*model.Challan, error)
	FindAll() ([]model.Challan, error)
	ExistsForPeriod(year, month int) (bool, error)
}

type challanRepository struct {
	db *gorm.DB
}

func NewChallanRepository(db *gorm.DB) ChallanRepository {
	return &challanRepository{db: db}
}

func (r *challanRepository) FindByID(id uint) (*model.Challan, error) {
	var challan model.Challan
	if err := r.db.Preload("Transactions").First(&challan, id).Error; err != nil {
		logger.Error("Failed to find challan by ID in database", err, map[string]interface{}{
			"challan_id": id,
		})
		return nil, err
	}
	return &challan, nil
}

// FindAll returns filed challans ordered by period, oldest first.
func (r *challanRepository) FindAll() ([]model.Challan, error) {
	var challans []model.Challan
	if err := r.db.Order("year ASC, month ASC").Find(&challans).Error; err != nil {
		logger.Error("Failed to list challans in database", err)
		return nil, err
	}

	logger.Debug("Challans listed from database", map[string]interface{}{
		"count": len(challans),
	})
	return challans, nil
}

func (r *challanRepository) ExistsForPeriod(year, month int) (bool, error) {
	return ChallanExistsTx(r.db, year, month)
}

// ChallanExistsTx reports whether a challan was already filed for the
// period, against an explicit handle so reconciliation can check inside
// its own transaction.
func ChallanExistsTx(db *gorm.DB, year, month int) (bool, error) {
	var count int64
	err := db.Model(&model.Challan{}).
		Where("year = ? AND month = ?", year, month).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check challan period in database", err, map[string]interface{}{
			"year":  year,
			"month": month,
		})
		return false, err
	}
	return count > 0, nil
}
